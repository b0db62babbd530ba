// Package device is the device catalog: sites, their capabilities, and the
// routing matrix's single-step reachability. It is an external
// collaborator the rest of gopar only reads the layout of and writes
// mutable Config into.
//
// Site kinds are an open-ish tagged variant with a small capability
// interface: a common embedded struct carries the shared fields, each
// concrete kind embeds it and adds kind-specific data, and code that needs
// to special-case a kind does a type switch on Kind() rather than a
// downcast through an inheritance chain.
package device

import (
	"fmt"

	"github.com/parforge/gopar/pkg/pargraph"
)

// Kind tags which sort of site a Site value is.
type Kind int

const (
	KindIOB Kind = iota
	KindLUT
	KindDFF
	KindComparator
	KindOscillator
	KindCounter
	KindLUTLike
	KindVoltageRef
	KindPGA
	KindPowerRail
	KindRoutingSwitch
)

func (k Kind) String() string {
	switch k {
	case KindIOB:
		return "IOB"
	case KindLUT:
		return "LUT"
	case KindDFF:
		return "DFF"
	case KindComparator:
		return "ACMP"
	case KindOscillator:
		return "OSC"
	case KindCounter:
		return "COUNT"
	case KindLUTLike:
		return "LUTLIKE"
	case KindVoltageRef:
		return "VREF"
	case KindPGA:
		return "PGA"
	case KindPowerRail:
		return "PWR"
	case KindRoutingSwitch:
		return "SWITCH"
	default:
		return "?"
	}
}

// Config is a site's mutable configuration record: cell mode, input mux
// selectors, and enable/power flags. It starts zero-valued (the site is
// unconfigured) and is written only by the commit stage.
type Config struct {
	Mode             string
	InputSource      map[string]string
	Enabled          bool
	PowerDown        bool
	PowerDownSource  string
	RoutesUsed       int
	Extra            map[string]string
}

func newConfig() *Config {
	return &Config{InputSource: make(map[string]string), Extra: make(map[string]string)}
}

// SetInput records that port is driven by sourceName (another site's name,
// or "VDD"/"GND").
func (c *Config) SetInput(port, sourceName string) {
	c.InputSource[port] = sourceName
}

// Site is the capability interface every device payload implements.
type Site interface {
	Kind() Kind
	Name() string
	Inputs() []string
	Outputs() []string
	IsUsed() bool
	Config() *Config
	ParNode() pargraph.Node
	SetParNode(pargraph.Node)
	String() string
}

// base carries the fields every concrete site kind shares.
type base struct {
	kind    Kind
	name    string
	inputs  []string
	outputs []string
	cfg     *Config
	parNode pargraph.Node
}

func newBase(kind Kind, name string, inputs, outputs []string) base {
	return base{kind: kind, name: name, inputs: inputs, outputs: outputs, cfg: newConfig()}
}

func (b *base) Kind() Kind             { return b.kind }
func (b *base) Name() string           { return b.name }
func (b *base) Inputs() []string       { return b.inputs }
func (b *base) Outputs() []string      { return b.outputs }
func (b *base) Config() *Config        { return b.cfg }
func (b *base) ParNode() pargraph.Node { return b.parNode }
func (b *base) SetParNode(n pargraph.Node) { b.parNode = n }
func (b *base) String() string         { return fmt.Sprintf("%s(%s)", b.kind, b.name) }

// IsUsed reports whether the site has been mated (the general case for
// most kinds). Power rails and routing switches override this on their own
// type to always report true.
func (b *base) IsUsed() bool { return !b.parNode.IsZero() && b.parNode.IsMated() }
