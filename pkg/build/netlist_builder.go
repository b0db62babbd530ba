package build

import (
	"fmt"

	"github.com/parforge/gopar/pkg/device"
	"github.com/parforge/gopar/pkg/label"
	"github.com/parforge/gopar/pkg/netlist"
	"github.com/parforge/gopar/pkg/pargraph"
)

// driverRef names the (node, port) pair that drives a net.
type driverRef struct {
	node pargraph.Node
	port string
}

// BuildNetlist emits one N node per netlist entity and one required edge
// per net-driven port-to-port connection. It returns a name -> node index
// so callers (report rendering, DRC entity naming) can look a placed
// entity back up without re-walking the module.
func BuildNetlist(mod *netlist.Module, prog *Program) (map[string]pargraph.Node, error) {
	nodeByName := make(map[string]pargraph.Node)

	for _, ent := range mod.Entities() {
		labels, err := entityLabels(prog, ent)
		if err != nil {
			return nil, err
		}
		nodeByName[ent.Name] = prog.N.AddNode(ent, labels...)
	}

	drivers := make(map[int]driverRef)
	type consumer struct {
		node pargraph.Node
		port string
	}
	consumers := make(map[int][]consumer)

	for _, ent := range mod.Entities() {
		if ent.Kind != netlist.CellEntity {
			continue
		}
		spec, ok := cellTable[ent.Cell.Type]
		if !ok {
			return nil, fmt.Errorf("build: cell %s: unknown cell type %q", ent.Name, ent.Cell.Type)
		}
		node := nodeByName[ent.Name]
		for port, netID := range ent.Cell.Ports {
			dir, known := spec.ports[port]
			if !known {
				return nil, fmt.Errorf("build: cell %s (%s): unknown port %q", ent.Name, ent.Cell.Type, port)
			}
			switch netID {
			case netlist.VDDNet:
				if err := prog.N.AddEdge(nodeByName["VDD"], node, prog.Ports.Intern("OUT"), prog.Ports.Intern(port)); err != nil {
					return nil, err
				}
			case netlist.GNDNet:
				if err := prog.N.AddEdge(nodeByName["GND"], node, prog.Ports.Intern("OUT"), prog.Ports.Intern(port)); err != nil {
					return nil, err
				}
			default:
				if dir == dirOut {
					drivers[netID] = driverRef{node: node, port: port}
				} else {
					consumers[netID] = append(consumers[netID], consumer{node: node, port: port})
				}
			}
		}
	}

	// A top-level port with a net binding carries a signal into or out of
	// the netlist rather than only naming a package pin: "in" and "inout"
	// ports drive their net the way an external source would, "out" and
	// "inout" ports consume whatever drives it, the way an external sink
	// would.
	const portWire = "IO"
	for _, ent := range mod.Entities() {
		if ent.Kind != netlist.PortEntity || ent.Port.Net == 0 {
			continue
		}
		node := nodeByName[ent.Name]
		switch ent.Port.Direction {
		case "in":
			drivers[ent.Port.Net] = driverRef{node: node, port: portWire}
		case "out":
			consumers[ent.Port.Net] = append(consumers[ent.Port.Net], consumer{node: node, port: portWire})
		case "inout":
			drivers[ent.Port.Net] = driverRef{node: node, port: portWire}
			consumers[ent.Port.Net] = append(consumers[ent.Port.Net], consumer{node: node, port: portWire})
		}
	}

	for netID, cons := range consumers {
		d, ok := drivers[netID]
		if !ok {
			return nil, fmt.Errorf("build: net %s has no driver", mod.NetName(netID))
		}
		for _, c := range cons {
			if err := prog.N.AddEdge(d.node, c.node, prog.Ports.Intern(d.port), prog.Ports.Intern(c.port)); err != nil {
				return nil, err
			}
		}
	}

	return nodeByName, nil
}

// entityLabels computes the label set a netlist entity needs to be
// satisfied by a device node.
func entityLabels(prog *Program, ent netlist.Entity) ([]label.ID, error) {
	switch ent.Kind {
	case netlist.PowerEntity:
		return []label.ID{prog.classLabel("PWR:" + ent.Name)}, nil

	case netlist.PortEntity:
		if ent.Port.Pin == 0 {
			return nil, fmt.Errorf("build: port %s: no pin bound", ent.Name)
		}
		if _, ok := prog.part.IOBByPin(ent.Port.Pin); !ok {
			return nil, fmt.Errorf("build: port %s: device has no IOB at pin %d", ent.Name, ent.Port.Pin)
		}
		return []label.ID{prog.pinLabel(ent.Port.Pin)}, nil

	case netlist.CellEntity:
		spec, ok := cellTable[ent.Cell.Type]
		if !ok {
			return nil, fmt.Errorf("build: cell %s: unknown cell type %q", ent.Name, ent.Cell.Type)
		}
		if spec.kind == device.KindIOB {
			pin, ok := ent.Cell.Params["PIN"]
			pinVal, isInt := pin.AsInt()
			if !ok || !isInt {
				return nil, fmt.Errorf("build: cell %s (%s): missing integer PIN parameter", ent.Name, ent.Cell.Type)
			}
			if _, exists := prog.part.IOBByPin(int(pinVal)); !exists {
				return nil, fmt.Errorf("build: cell %s: device has no IOB at pin %d", ent.Name, pinVal)
			}
			return []label.ID{prog.pinLabel(int(pinVal))}, nil
		}
		return []label.ID{prog.classLabel(spec.labelKind)}, nil

	default:
		return nil, fmt.Errorf("build: entity %s: unknown entity kind", ent.Name)
	}
}
