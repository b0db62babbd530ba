package device

import "sort"

// RoutingEdge is one single-step routing path the fabric can realise, from
// one site's output port to another site's input port: the routing fabric
// is modelled as fully crossbarred within its legal reach, not as a
// multi-hop graph.
type RoutingEdge struct {
	FromSite, FromPort string
	ToSite, ToPort     string
	Matrix             string
}

// Part is the device catalog: every site, indexed by kind and name, the
// single-step routing reachability table, and the part identifier.
type Part struct {
	ID string

	sites    map[string]Site
	iobByPin map[int]*IOB
	reach    map[string][]RoutingEdge // "site/port" -> reachable edges

	// ACMPGroups names, for each shared-input-mux group, the comparators
	// that share it, and MuxOwner names which comparator in the group owns
	// the physical mux register.
	ACMPGroups map[string][]string

	// PORDoneSignal is the symbolic name of the power-on-reset-complete
	// signal the ACMP auto-enable rule gates on.
	PORDoneSignal string
}

// NewPart returns an empty catalog for the named part.
func NewPart(id string) *Part {
	return &Part{
		ID:            id,
		sites:         make(map[string]Site),
		iobByPin:      make(map[int]*IOB),
		reach:         make(map[string][]RoutingEdge),
		ACMPGroups:    make(map[string][]string),
		PORDoneSignal: "POR_DONE",
	}
}

// AddSite registers a site in the catalog.
func (p *Part) AddSite(s Site) {
	p.sites[s.Name()] = s
	if iob, ok := s.(*IOB); ok {
		p.iobByPin[iob.Pin] = iob
	}
}

// AddReach records a single-step routing path.
func (p *Part) AddReach(e RoutingEdge) {
	key := reachKey(e.FromSite, e.FromPort)
	p.reach[key] = append(p.reach[key], e)
}

func reachKey(site, port string) string { return site + "/" + port }

// ReachFrom returns every routing edge the fabric can realise from
// site/port.
func (p *Part) ReachFrom(site, port string) []RoutingEdge {
	return p.reach[reachKey(site, port)]
}

// Site looks up a site by name.
func (p *Part) Site(name string) (Site, bool) {
	s, ok := p.sites[name]
	return s, ok
}

// IOBByPin looks up the IOB bound to a physical pin number.
func (p *Part) IOBByPin(pin int) (*IOB, bool) {
	iob, ok := p.iobByPin[pin]
	return iob, ok
}

// AllSites returns every site in the catalog, sorted by name for
// deterministic iteration, since every traversal the builders and engine
// do must visit nodes in a fixed order.
func (p *Part) AllSites() []Site {
	out := make([]Site, 0, len(p.sites))
	for _, s := range p.sites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// SitesOfKind returns every site of the given kind, sorted by name.
func (p *Part) SitesOfKind(k Kind) []Site {
	all := p.AllSites()
	out := make([]Site, 0, len(all))
	for _, s := range all {
		if s.Kind() == k {
			out = append(out, s)
		}
	}
	return out
}

// ComparatorGroup returns the shared-mux group name a comparator belongs
// to, or "" if it has a private mux.
func (p *Part) ComparatorGroup(name string) string {
	for group, members := range p.ACMPGroups {
		for _, m := range members {
			if m == name {
				return group
			}
		}
	}
	return ""
}
