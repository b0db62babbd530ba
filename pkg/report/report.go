// Package report renders the placement and utilisation tables a completed
// run produces: a plain-text writer for piping/logging, and an interactive
// terminal viewer for humans.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/netlist"
	"github.com/parforge/gopar/pkg/pargraph"
)

// PlacementRow is one netlist entity's final site assignment.
type PlacementRow struct {
	Entity string
	Kind   string
	Site   string
}

// UtilizationRow tallies how much of one site kind a placement consumed.
type UtilizationRow struct {
	Kind  string
	Used  int
	Total int
}

// Report is everything gopar prints about one run.
type Report struct {
	Part        string
	Score       int
	Iterations  int
	Solved      bool
	Placement   []PlacementRow
	Utilization []UtilizationRow
	MatrixUsage map[string]int
}

// Build assembles a Report from the mated netlist graph, the device
// catalog it was placed onto, and the search outcome.
func Build(n *pargraph.Graph, part *device.Part, score, iterations int, solved bool, matrixUsage map[string]int) *Report {
	r := &Report{
		Part:        part.ID,
		Score:       score,
		Iterations:  iterations,
		Solved:      solved,
		MatrixUsage: matrixUsage,
	}

	for _, node := range n.Nodes() {
		ent, ok := node.Payload().(netlist.Entity)
		if !ok {
			continue
		}
		row := PlacementRow{Entity: ent.Name, Kind: entityKind(ent)}
		if mate, ok := node.Mate(); ok {
			if site, ok := mate.Payload().(device.Site); ok {
				row.Site = site.Name()
			}
		} else {
			row.Site = "-"
		}
		r.Placement = append(r.Placement, row)
	}
	sort.Slice(r.Placement, func(i, j int) bool { return r.Placement[i].Entity < r.Placement[j].Entity })

	totals := make(map[device.Kind]int)
	used := make(map[device.Kind]int)
	for _, s := range part.AllSites() {
		if s.Kind() == device.KindRoutingSwitch || s.Kind() == device.KindPowerRail {
			continue
		}
		totals[s.Kind()]++
		if s.IsUsed() {
			used[s.Kind()]++
		}
	}
	kinds := make([]device.Kind, 0, len(totals))
	for k := range totals {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].String() < kinds[j].String() })
	for _, k := range kinds {
		r.Utilization = append(r.Utilization, UtilizationRow{Kind: k.String(), Used: used[k], Total: totals[k]})
	}

	return r
}

func entityKind(ent netlist.Entity) string {
	switch ent.Kind {
	case netlist.PowerEntity:
		return "POWER"
	case netlist.PortEntity:
		return "PORT"
	case netlist.CellEntity:
		return ent.Cell.Type
	default:
		return "?"
	}
}

// WriteText writes the plain-text rendering of r to w.
func WriteText(w io.Writer, r *Report) error {
	status := "FAILED"
	if r.Solved {
		status = "SOLVED"
	}
	if _, err := fmt.Fprintf(w, "part: %s   status: %s   score: %d   iterations: %d\n\n", r.Part, status, r.Score, r.Iterations); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "UTILIZATION"); err != nil {
		return err
	}
	for _, u := range r.Utilization {
		if _, err := fmt.Fprintf(w, "  %-10s %d/%d\n", u.Kind, u.Used, u.Total); err != nil {
			return err
		}
	}

	matrices := make([]string, 0, len(r.MatrixUsage))
	for m := range r.MatrixUsage {
		matrices = append(matrices, m)
	}
	sort.Strings(matrices)
	if len(matrices) > 0 {
		if _, err := fmt.Fprintln(w, "\nROUTES"); err != nil {
			return err
		}
		for _, m := range matrices {
			if _, err := fmt.Fprintf(w, "  matrix %-6s %d routes\n", m, r.MatrixUsage[m]); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, "\nPLACEMENT"); err != nil {
		return err
	}
	for _, p := range r.Placement {
		if _, err := fmt.Fprintf(w, "  %-20s %-10s -> %s\n", p.Entity, p.Kind, p.Site); err != nil {
			return err
		}
	}
	return nil
}
