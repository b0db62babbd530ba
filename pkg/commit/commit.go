// Package commit turns a scored-zero placement into concrete site
// configuration: input mux selections, cell mode strings, enable flags, and
// a per-matrix route-usage tally.
//
// It follows a buffered-then-applied transaction shape — stage every
// mutation, validate the whole batch, then apply: Run first collects
// every site Config mutation into a batch tied to the netlist node that
// produced it, checks the batch for the one condition that must never
// reach the device model (two writers assigning different sources to the
// same site input, which would mean the router produced an inconsistent
// solution), and only then applies each mutation to the live device.Site
// values. A caller that wants to inspect what would be written without
// mutating the device model can call Plan directly.
package commit

import (
	"fmt"

	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/netlist"
	"github.com/parforge/gopar/pkg/pargraph"
)

// Tally reports how much of the routing fabric a placement consumed.
type Tally struct {
	MatrixUsage map[string]int
	RoutesTotal int
}

// mutation is one staged write against a site's Config.
type mutation struct {
	site   device.Site
	input  string // empty for the mode/enable mutations
	source string
	mode   string
	enable bool
}

// Plan stages every Config mutation a solved placement implies, without
// applying any of them. n must already be a zero-score placement (every N
// node mated, every required edge routed) — Plan does not itself check
// legality, that is the DRC's job.
func Plan(n *pargraph.Graph, part *device.Part, ports *pargraph.PortTable) ([]mutation, *Tally, error) {
	nodes := n.Nodes()
	byID := make(map[pargraph.NodeID]pargraph.Node, len(nodes))
	for _, nd := range nodes {
		byID[nd.ID()] = nd
	}

	var muts []mutation
	tally := &Tally{MatrixUsage: make(map[string]int)}

	for _, node := range nodes {
		mate, ok := node.Mate()
		if !ok {
			return nil, nil, fmt.Errorf("commit: %s has no device mate", node)
		}
		site, ok := mate.Payload().(device.Site)
		if !ok {
			return nil, nil, fmt.Errorf("commit: %s device mate has no site payload", node)
		}
		muts = append(muts, mutation{site: site, mode: cellMode(node), enable: true})
	}

	for _, node := range nodes {
		for _, e := range node.EdgesFrom() {
			to := byID[e.To]
			fromSite, toSite, err := matedSites(node, to)
			if err != nil {
				return nil, nil, err
			}
			fromPort, toPort := ports.Name(e.SrcPort), ports.Name(e.DstPort)
			muts = append(muts, mutation{site: toSite, input: toPort, source: fromSite.Name()})

			re, ok := findRoute(part, fromSite.Name(), fromPort, toSite.Name(), toPort)
			if !ok {
				return nil, nil, fmt.Errorf("commit: no routing edge %s.%s -> %s.%s in device catalog", fromSite.Name(), fromPort, toSite.Name(), toPort)
			}
			tally.MatrixUsage[re.Matrix]++
			tally.RoutesTotal++
		}
	}
	return muts, tally, nil
}

// Run stages every mutation via Plan, rejects a batch with conflicting
// writes to the same site input, and applies the rest to the live
// device.Site values.
func Run(n *pargraph.Graph, part *device.Part, ports *pargraph.PortTable) (*Tally, error) {
	muts, tally, err := Plan(n, part, ports)
	if err != nil {
		return nil, err
	}
	if err := checkConflicts(muts); err != nil {
		return nil, err
	}

	// Reset the per-site route counter before replaying the batch, so that
	// committing the same placement twice converges to the same device
	// state instead of accumulating a higher count on every call.
	for _, s := range part.AllSites() {
		s.Config().RoutesUsed = 0
	}

	for _, m := range muts {
		cfg := m.site.Config()
		if m.input != "" {
			cfg.SetInput(m.input, m.source)
			cfg.RoutesUsed++
			continue
		}
		cfg.Enabled = m.enable
		if m.mode != "" {
			cfg.Mode = m.mode
		}
	}

	// An oscillator's power-down state is derived from what commit just
	// wired to its PWRDN input: unconnected or tied to GND means never
	// powered down, tied to VDD means always powered down (a constant, so
	// it can never conflict with another oscillator's power-down source),
	// anything else is a live net the DRC's power-down-sharing rule must
	// compare against every other oscillator's.
	for _, s := range part.SitesOfKind(device.KindOscillator) {
		if src, ok := s.Config().InputSource["PWRDN"]; ok && src != "GND" {
			s.Config().PowerDown = true
			s.Config().PowerDownSource = src
		}
	}
	return tally, nil
}

// checkConflicts rejects a batch where two mutations assign different
// sources to the same (site, input) pair — a router bug, since a legal
// placement's device edges form a bijection on inputs.
func checkConflicts(muts []mutation) error {
	seen := make(map[string]string)
	for _, m := range muts {
		if m.input == "" {
			continue
		}
		key := m.site.Name() + "." + m.input
		if prior, ok := seen[key]; ok && prior != m.source {
			return fmt.Errorf("commit: internal: %s driven by both %s and %s", key, prior, m.source)
		}
		seen[key] = m.source
	}
	return nil
}

func matedSites(from, to pargraph.Node) (device.Site, device.Site, error) {
	fMate, ok := from.Mate()
	if !ok {
		return nil, nil, fmt.Errorf("commit: %s has no device mate", from)
	}
	tMate, ok := to.Mate()
	if !ok {
		return nil, nil, fmt.Errorf("commit: %s has no device mate", to)
	}
	fSite, ok := fMate.Payload().(device.Site)
	if !ok {
		return nil, nil, fmt.Errorf("commit: %s device mate has no site payload", from)
	}
	tSite, ok := tMate.Payload().(device.Site)
	if !ok {
		return nil, nil, fmt.Errorf("commit: %s device mate has no site payload", to)
	}
	return fSite, tSite, nil
}

func findRoute(part *device.Part, fromSite, fromPort, toSite, toPort string) (device.RoutingEdge, bool) {
	for _, re := range part.ReachFrom(fromSite, fromPort) {
		if re.ToSite == toSite && re.ToPort == toPort {
			return re, true
		}
	}
	return device.RoutingEdge{}, false
}

// cellMode derives the site Config.Mode string from the netlist entity
// mated to it: the IOB direction cell type, or the underlying cell type
// name for everything else. Power and unbound entities have no mode of
// their own.
func cellMode(n pargraph.Node) string {
	ent, ok := n.Payload().(netlist.Entity)
	if !ok {
		return ""
	}
	switch ent.Kind {
	case netlist.PortEntity:
		return ent.Port.Direction
	case netlist.CellEntity:
		switch ent.Cell.Type {
		case "GP_IBUF":
			return "in"
		case "GP_OBUF":
			return "out"
		case "GP_IOBUF":
			return "inout"
		default:
			return ent.Cell.Type
		}
	default:
		return ""
	}
}
