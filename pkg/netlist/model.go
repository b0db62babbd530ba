// Package netlist is the structured object model the synthesis front end
// hands to the placement engine: modules, cells, ports and nets. It is
// presented fully in memory rather than streamed, since a GreenPAK-class
// netlist is small enough that there is nothing to gain from incremental
// decoding.
//
// Cell parameter values are modelled as a small typed variant rather than
// bare strings, pairing a type tag with the decoded value (GP_COUNT8's
// CLK_DIV needs to be an int, GP_DFF's EDGE needs to be compared as an
// enum, not string-matched ad hoc).
package netlist

import (
	"fmt"
	"sort"
)

// Sentinel net IDs. A netlist synthesiser drives a cell input from one of
// these instead of a real net when the input is tied to a constant; the
// builders wire them to the VDD/GND pseudo-nodes.
const (
	VDDNet = -1
	GNDNet = -2
)

// ParamType tags the kind of value stored in a Param.
type ParamType int

const (
	ParamString ParamType = iota
	ParamInt
	ParamBool
)

// Param is a single typed cell parameter value.
type Param struct {
	Type ParamType
	Str  string
	Int  int64
	Bool bool
}

func StringParam(s string) Param { return Param{Type: ParamString, Str: s} }
func IntParam(i int64) Param     { return Param{Type: ParamInt, Int: i} }
func BoolParam(b bool) Param     { return Param{Type: ParamBool, Bool: b} }

func (p Param) String() string {
	switch p.Type {
	case ParamString:
		return p.Str
	case ParamInt:
		return fmt.Sprintf("%d", p.Int)
	case ParamBool:
		return fmt.Sprintf("%t", p.Bool)
	default:
		return "?"
	}
}

// AsInt returns the parameter's integer value, or ok=false if it is not an
// int-typed parameter.
func (p Param) AsInt() (int64, bool) {
	if p.Type != ParamInt {
		return 0, false
	}
	return p.Int, true
}

// AsString returns the parameter's string value, or ok=false if it is not a
// string-typed parameter.
func (p Param) AsString() (string, bool) {
	if p.Type != ParamString {
		return "", false
	}
	return p.Str, true
}

// AsBool returns the parameter's boolean value, or ok=false if it is not a
// bool-typed parameter.
func (p Param) AsBool() (bool, bool) {
	if p.Type != ParamBool {
		return false, false
	}
	return p.Bool, true
}

// UnmarshalYAML lets Param appear as a bare scalar in fixture YAML
// (CLK_DIV: 4, INVERT: true, EDGE: rising) while still decoding to the
// typed variant internally.
func (p *Param) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case int:
		*p = IntParam(int64(v))
	case int64:
		*p = IntParam(v)
	case bool:
		*p = BoolParam(v)
	case string:
		*p = StringParam(v)
	default:
		return fmt.Errorf("netlist: unsupported parameter value %v (%T)", raw, raw)
	}
	return nil
}

// Cell is one synthesised, typed instance in the netlist: a LUT, a flip
// flop, an I/O buffer, a comparator, an oscillator, a counter, ...
type Cell struct {
	Name   string           `yaml:"name" validate:"required"`
	Type   string           `yaml:"type" validate:"required"`
	Params map[string]Param `yaml:"params"`
	// Ports maps a symbolic port name to the net it connects to. Values may
	// be a real net id, or the VDDNet/GNDNet sentinels.
	Ports map[string]int `yaml:"ports" validate:"required"`
}

func (c Cell) String() string { return fmt.Sprintf("%s(%s)", c.Type, c.Name) }

// Port is a top-level module I/O, optionally bound to a physical package
// pin (for IOB-hosted ports).
type Port struct {
	Name      string `yaml:"name" validate:"required"`
	Direction string `yaml:"direction" validate:"required,oneof=in out inout"`
	Net       int    `yaml:"net"`
	Pin       int    `yaml:"pin"`
}

func (p Port) String() string { return fmt.Sprintf("port(%s)", p.Name) }

// Module is the top of the netlist object model: named ports, named cells,
// and the net id -> symbolic name table.
type Module struct {
	Name  string          `yaml:"name" validate:"required"`
	Ports []Port          `yaml:"ports" validate:"dive"`
	Cells map[string]Cell `yaml:"cells" validate:"required,dive"`
	Nets  map[int]string  `yaml:"nets"`
}

// NetName returns the symbolic name for a net id, or a synthetic "net<N>"
// name if none was recorded.
func (m *Module) NetName(id int) string {
	switch id {
	case VDDNet:
		return "VDD"
	case GNDNet:
		return "GND"
	}
	if name, ok := m.Nets[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("net%d", id)
}

// EntityKind tags what a graph-model Entity represents.
type EntityKind int

const (
	CellEntity EntityKind = iota
	PortEntity
	PowerEntity
)

// Entity is the netlist-side node payload: either a cell, a top-level port,
// or one of the two power/ground pseudo-nodes.
type Entity struct {
	Kind EntityKind
	Name string
	Cell *Cell
	Port *Port
}

func (e Entity) String() string { return e.Name }

// Entities enumerates every entity the netlist builder must place: one per
// cell, one per top-level port, and the two constant pseudo-nodes VDD/GND
// (always present — any netlist may tie an input to a constant).
func (m *Module) Entities() []Entity {
	out := make([]Entity, 0, len(m.Cells)+len(m.Ports)+2)
	out = append(out, Entity{Kind: PowerEntity, Name: "VDD"})
	out = append(out, Entity{Kind: PowerEntity, Name: "GND"})

	ports := make([]Port, len(m.Ports))
	copy(ports, m.Ports)
	sort.Slice(ports, func(i, j int) bool { return ports[i].Name < ports[j].Name })
	for _, p := range ports {
		p := p
		out = append(out, Entity{Kind: PortEntity, Name: p.Name, Port: &p})
	}

	names := make([]string, 0, len(m.Cells))
	for name := range m.Cells {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := m.Cells[name]
		out = append(out, Entity{Kind: CellEntity, Name: name, Cell: &c})
	}
	return out
}
