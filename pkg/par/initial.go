package par

import (
	"fmt"
	"sort"
	"strings"

	"github.com/parforge/gopar/pkg/label"
	"github.com/parforge/gopar/pkg/pargraph"
)

// InitialPlacement performs the greedy first pass of the search: for each
// netlist node, in highest-label-rarity-first order, mate it to any
// unmated compatible device node. Before attempting individual placements
// it checks, per single-label compatibility class, whether total demand
// exceeds total supply, so that an infeasible netlist (e.g. one that needs
// 4 counters when the target part has 2) is reported with every offending
// cell named at once rather than failing on whichever one the greedy order
// happens to starve.
func InitialPlacement(n, d *pargraph.Graph) error {
	if err := checkCapacity(n, d); err != nil {
		return err
	}

	supply := labelSupply(d)
	nodes := append([]pargraph.Node(nil), n.Nodes()...)
	sort.Slice(nodes, func(i, j int) bool {
		ri, rj := rarity(nodes[i], supply), rarity(nodes[j], supply)
		if ri != rj {
			return ri < rj
		}
		return nodes[i].ID() < nodes[j].ID()
	})

	for _, node := range nodes {
		if node.IsMated() {
			continue
		}
		placed := false
		for _, dn := range d.Nodes() {
			if dn.IsMated() {
				continue
			}
			if dn.SharesLabel(node) {
				if err := pargraph.SetMate(node, dn); err != nil {
					return fmt.Errorf("par: internal: %w", err)
				}
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("par: cannot place %s: no free compatible device site (device too small or wrong part)", node)
		}
	}
	return nil
}

func labelSupply(d *pargraph.Graph) map[label.ID]int {
	supply := make(map[label.ID]int)
	for _, dn := range d.Nodes() {
		for _, l := range dn.Labels() {
			supply[l]++
		}
	}
	return supply
}

// rarity is the size of the smallest device pool that could host node —
// placing the tightest-supplied classes first gives them first pick of
// their few candidates.
func rarity(node pargraph.Node, supply map[label.ID]int) int {
	best := -1
	for _, l := range node.Labels() {
		c := supply[l]
		if best == -1 || c < best {
			best = c
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

// checkCapacity aggregates demand and supply for every compatibility class
// that identifies a netlist node by a single label (i.e. every class except
// per-pin IOB labels, whose scarcity is checked earlier at build time: a
// pin either has a device site or the build stage already rejected the
// netlist). It reports every class where demand exceeds supply in one
// error, naming every entity competing for that class.
func checkCapacity(n, d *pargraph.Graph) error {
	demand := make(map[label.ID][]pargraph.Node)
	for _, node := range n.Nodes() {
		labels := node.Labels()
		if len(labels) == 1 {
			demand[labels[0]] = append(demand[labels[0]], node)
		}
	}
	supply := labelSupply(d)

	var overflows []string
	for l, nodes := range demand {
		have := supply[l]
		if len(nodes) > have {
			names := make([]string, len(nodes))
			for i, nd := range nodes {
				names[i] = nd.String()
			}
			sort.Strings(names)
			overflows = append(overflows, fmt.Sprintf("%s needs %d, device has %d: %s", n.LabelDesc(l), len(nodes), have, strings.Join(names, ", ")))
		}
	}
	if len(overflows) == 0 {
		return nil
	}
	sort.Strings(overflows)
	return fmt.Errorf("par: cannot place netlist, device too small: %s", strings.Join(overflows, "; "))
}
