// Package drc implements the post-PAR design-rule checks: a fixed catalog
// of rules, each warning or fatal, that verify device-specific legality
// invariants the search itself has no vocabulary for (analog mux sharing,
// oscillator power-down sharing, IOB source compatibility).
//
// The catalog shape is independent rules, each evaluated against a
// read-only view of the checked state and run in a fixed sequence, writing
// straight into a diag.Sink rather than returning a violation slice, since
// gopar's sink is already the single place fatal-vs-warning-vs-info
// decisions get made and reported.
package drc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/diag"
	"github.com/parforge/gopar/pkg/netlist"
	"github.com/parforge/gopar/pkg/pargraph"
)

// Run executes every rule in the catalog against the committed state and
// returns a *diag.FatalError if any rule fired fatally. Rules always run to
// completion even after one fires fatal, so a single run reports every
// violation rather than just the first.
func Run(n *pargraph.Graph, part *device.Part, sink diag.Sink) error {
	fatal := false
	fatal = unmatedRule(n, sink) || fatal
	noLoadRule(n, sink)
	fatal = analogIBUFRule(part, sink) || fatal
	fatal = acmpMuxRule(part, sink) || fatal
	fatal = oscillatorPowerDownRule(part, sink) || fatal

	if fatal {
		entries := sink.Entries()
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].Level == diag.FatalLevel {
				return &diag.FatalError{Entry: entries[i]}
			}
		}
	}
	return nil
}

// unmatedRule: every netlist node must have a mate.
func unmatedRule(n *pargraph.Graph, sink diag.Sink) bool {
	fatal := false
	for _, node := range n.Nodes() {
		if !node.IsMated() {
			sink.Fatal("unmated-node", node.String(), "no device mate assigned")
			fatal = true
		}
	}
	return fatal
}

// noLoadRule warns about a netlist cell that drives no load. Power rails,
// output-only IOBs (GP_OBUF and GP_IOBUF drive an external pad, not
// another cell, so an unconsumed OUT port is not a real no-load condition)
// and top-level port declarations (interface pin manifests, not
// signal-flow cells) are never flagged.
func noLoadRule(n *pargraph.Graph, sink diag.Sink) {
	for _, node := range n.Nodes() {
		ent, ok := node.Payload().(netlist.Entity)
		if !ok || ent.Kind != netlist.CellEntity {
			continue
		}
		if ent.Cell.Type == "GP_OBUF" || ent.Cell.Type == "GP_IOBUF" {
			continue
		}
		if len(node.EdgesFrom()) == 0 {
			sink.Warning("no-load", node.String(), "drives no load")
		}
	}
}

// analogIBUFRule: an IOB configured to drive its pad from an internal
// signal (GP_OBUF or GP_IOBUF) must not be fed directly by an analog
// source. gopar's catalog defines no analog-mode IOB cell, so any such
// connection is always a mismatch.
func analogIBUFRule(part *device.Part, sink diag.Sink) bool {
	fatal := false
	for _, s := range part.SitesOfKind(device.KindIOB) {
		src, ok := s.Config().InputSource["IN"]
		if !ok {
			continue
		}
		driver, ok := part.Site(src)
		if !ok {
			continue // not a catalog site, so not an analog source
		}
		if driver.Kind() == device.KindVoltageRef || driver.Kind() == device.KindPGA {
			sink.Fatal("analog-ibuf-mismatch", s.Name(), "driven by analog source %s but not configured as an analog input buffer", driver.Name())
			fatal = true
		}
	}
	return fatal
}

// acmpMuxRule enforces the shared-analog-mux constraint: every comparator
// sharing a mux group must request the same PLUS source. If they agree and
// the group's designated mux owner was never itself instantiated by the
// netlist, the rule synthesizes its configuration (powered on, gated by
// POR-done, mux set to the agreed source) and emits an INFO diagnostic
// rather than failing.
func acmpMuxRule(part *device.Part, sink diag.Sink) bool {
	fatal := false
	groups := make([]string, 0, len(part.ACMPGroups))
	for g := range part.ACMPGroups {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, group := range groups {
		members := part.ACMPGroups[group]
		type request struct {
			site   string
			source string
		}
		var reqs []request
		var owner *device.Comparator
		for _, name := range members {
			s, ok := part.Site(name)
			if !ok {
				continue
			}
			cmp, ok := s.(*device.Comparator)
			if !ok {
				continue
			}
			if cmp.MuxOwner {
				owner = cmp
			}
			if !cmp.IsUsed() {
				continue
			}
			src, ok := cmp.Config().InputSource["PLUS"]
			if !ok {
				continue
			}
			reqs = append(reqs, request{site: name, source: src})
		}
		if len(reqs) == 0 {
			continue
		}

		agreed := reqs[0].source
		conflict := false
		for _, r := range reqs[1:] {
			if r.source != agreed {
				conflict = true
			}
		}
		if conflict {
			parts := make([]string, len(reqs))
			for i, r := range reqs {
				parts[i] = fmt.Sprintf("%s requests %s", r.site, r.source)
			}
			sink.Fatal("acmp-mux-conflict", group, "shared mux requested with different sources: %s", strings.Join(parts, "; "))
			fatal = true
			continue
		}

		if owner != nil && !owner.IsUsed() {
			cfg := owner.Config()
			cfg.Enabled = true
			cfg.Mode = "GP_ACMP"
			cfg.SetInput("PLUS", agreed)
			cfg.Extra["power_down_source"] = part.PORDoneSignal
			sink.Info("acmp-mux-auto-enable", owner.Name(), "auto-enabled, mux set to %s, gated by %s", agreed, part.PORDoneSignal)
		}
	}
	return fatal
}

// oscillatorPowerDownRule: if more than one oscillator has power-down
// enabled with a non-constant source, all such sources must agree.
// commit.Run has already resolved each oscillator's PowerDown /
// PowerDownSource fields from its wired PWRDN input.
func oscillatorPowerDownRule(part *device.Part, sink diag.Sink) bool {
	type entry struct {
		name   string
		source string
	}
	var live []entry
	for _, s := range part.SitesOfKind(device.KindOscillator) {
		cfg := s.Config()
		if !cfg.PowerDown || cfg.PowerDownSource == "VDD" {
			continue
		}
		live = append(live, entry{name: s.Name(), source: cfg.PowerDownSource})
	}
	if len(live) < 2 {
		return false
	}
	agreed := live[0].source
	for _, e := range live[1:] {
		if e.source != agreed {
			parts := make([]string, len(live))
			for i, e := range live {
				parts[i] = fmt.Sprintf("%s <- %s", e.name, e.source)
			}
			sink.Fatal("osc-powerdown-conflict", live[0].name, "power-down sources disagree: %s", strings.Join(parts, "; "))
			return true
		}
	}
	return false
}
