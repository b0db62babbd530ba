package build

import (
	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/label"
)

// BuildDevice emits one D node per catalog site, labelled with every cell
// kind that site can implement, then wires an available edge for every
// single-step routing path the fabric can realise.
func BuildDevice(prog *Program) error {
	for _, site := range prog.part.AllSites() {
		labels := deviceLabels(prog, site)
		node := prog.D.AddNode(site, labels...)
		site.SetParNode(node)
	}

	for _, site := range prog.part.AllSites() {
		fromNode := site.ParNode()
		for _, outPort := range site.Outputs() {
			for _, edge := range prog.part.ReachFrom(site.Name(), outPort) {
				toSite, ok := prog.part.Site(edge.ToSite)
				if !ok {
					continue
				}
				toNode := toSite.ParNode()
				if err := prog.D.AddEdge(fromNode, toNode, prog.Ports.Intern(edge.FromPort), prog.Ports.Intern(edge.ToPort)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// deviceLabels returns every compatibility label a site satisfies: for LUTs
// this is every width up to and including the site's own, so a wide LUT
// site can also host a netlist cell that only needs a narrower one.
func deviceLabels(prog *Program, site device.Site) []label.ID {
	switch s := site.(type) {
	case *device.IOB:
		return []label.ID{prog.pinLabel(s.Pin), prog.classLabel("IOB")}
	case *device.LUT:
		labels := []label.ID{prog.classLabel("LUT>=2")}
		if s.Width >= 3 {
			labels = append(labels, prog.classLabel("LUT>=3"))
		}
		if s.Width >= 4 {
			labels = append(labels, prog.classLabel("LUT>=4"))
		}
		return labels
	case *device.DFF:
		return []label.ID{prog.classLabel("DFF")}
	case *device.Comparator:
		return []label.ID{prog.classLabel("ACMP")}
	case *device.Oscillator:
		if s.Family == device.RingOscillator {
			return []label.ID{prog.classLabel("OSC_RING")}
		}
		return []label.ID{prog.classLabel("OSC_LF")}
	case *device.Counter:
		return []label.ID{prog.classLabel(counterLabelKind(s.Width))}
	case *device.VoltageReference:
		return []label.ID{prog.classLabel("VREF")}
	case *device.PGA:
		return []label.ID{prog.classLabel("PGA")}
	case *device.PowerRail:
		return []label.ID{prog.classLabel("PWR:" + s.Name())}
	case *device.RoutingSwitch:
		// No cell can be labelled to match a routing switch: it is fabric
		// infrastructure, never a placement target.
		return nil
	default:
		return nil
	}
}

func counterLabelKind(width int) string {
	switch width {
	case 8:
		return "COUNT8"
	case 14:
		return "COUNT14"
	default:
		return "COUNT?"
	}
}
