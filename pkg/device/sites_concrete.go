package device

import "fmt"

// IOB is an input/output buffer bound to a physical package pin.
type IOB struct {
	base
	Pin int
}

// NewIOB returns an IOB site for the given pin.
func NewIOB(name string, pin int) *IOB {
	return &IOB{base: newBase(KindIOB, name, []string{"IN"}, []string{"OUT"}), Pin: pin}
}

// LUT is a lookup-table cell of a given input width (2, 3 or 4).
type LUT struct {
	base
	Width int
}

// NewLUT returns a LUT of the given input width.
func NewLUT(name string, width int) *LUT {
	inputs := make([]string, width)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("IN%d", i)
	}
	return &LUT{base: newBase(KindLUT, name, inputs, []string{"OUT"}), Width: width}
}

// DFF is a D flip-flop.
type DFF struct {
	base
}

// NewDFF returns a flip-flop site.
func NewDFF(name string) *DFF {
	return &DFF{base: newBase(KindDFF, name, []string{"D", "CLK", "nRST"}, []string{"Q"})}
}

// Comparator is an analog comparator (ACMP). SLG46620-class parts share one
// physical input mux between pairs of comparators; MuxGroup names the
// shared-mux group ("" if this comparator has a private mux), and MuxOwner
// is true for the comparator whose mux register is actually wired to the
// fabric (the shared-ACMP-mux rule powers this one on when no cell
// explicitly instantiates it).
type Comparator struct {
	base
	Ordinal  int
	MuxGroup string
	MuxOwner bool
}

// NewComparator returns a comparator site.
func NewComparator(name string, ordinal int) *Comparator {
	return &Comparator{base: newBase(KindComparator, name, []string{"PLUS", "MINUS"}, []string{"OUT"}), Ordinal: ordinal}
}

// OscillatorFamily distinguishes the ring oscillator from the low-frequency
// RC oscillator; both support power-down but are otherwise independent
// sites.
type OscillatorFamily int

const (
	RingOscillator OscillatorFamily = iota
	LFOscillator
)

func (f OscillatorFamily) String() string {
	if f == RingOscillator {
		return "RINGOSC"
	}
	return "LFOSC"
}

// Oscillator is an on-chip clock source with an optional power-down input.
type Oscillator struct {
	base
	Family OscillatorFamily
}

// NewOscillator returns an oscillator site of the given family.
func NewOscillator(name string, family OscillatorFamily) *Oscillator {
	return &Oscillator{base: newBase(KindOscillator, name, []string{"PWRDN"}, []string{"CLKOUT"}), Family: family}
}

// Counter is a binary counter/divider of a given bit width.
type Counter struct {
	base
	Width int
}

// NewCounter returns a counter site of the given width.
func NewCounter(name string, width int) *Counter {
	return &Counter{base: newBase(KindCounter, name, []string{"CLK", "RST"}, []string{"OUT"}), Width: width}
}

// LUTLike is a block that behaves like a LUT for placement purposes (e.g. a
// filter or shift-register configured combinationally) but is cataloged
// separately because it has different physical siting rules.
type LUTLike struct {
	base
}

// NewLUTLike returns a LUT-like site.
func NewLUTLike(name string, inputs, outputs []string) *LUTLike {
	return &LUTLike{base: newBase(KindLUTLike, name, inputs, outputs)}
}

// VoltageReference is an analog voltage-reference source, a legal analog
// driver for a comparator input or an IOB configured as an analog input.
type VoltageReference struct {
	base
}

// NewVoltageReference returns a voltage-reference site.
func NewVoltageReference(name string) *VoltageReference {
	return &VoltageReference{base: newBase(KindVoltageRef, name, nil, []string{"OUT"})}
}

// PGA is a programmable-gain amplifier, another legal analog driver.
type PGA struct {
	base
}

// NewPGA returns a PGA site.
func NewPGA(name string) *PGA {
	return &PGA{base: newBase(KindPGA, name, []string{"IN"}, []string{"OUT"})}
}

// PowerRail is one of the two constant drivers, VDD or GND.
type PowerRail struct {
	base
}

// NewPowerRail returns a constant-driver site.
func NewPowerRail(name string) *PowerRail {
	return &PowerRail{base: newBase(KindPowerRail, name, nil, []string{"OUT"})}
}

// IsUsed is always true for a power rail: it is a passive, always-available
// constant driver, never something the DRC "no-load" rule should flag as
// unmated.
func (p *PowerRail) IsUsed() bool { return true }

// RoutingSwitch is an explicit crossbar element in the routing matrix.
// Nothing hosts a netlist cell on a RoutingSwitch (it carries no
// cell-compatibility label). It carries the matrix name that routing edges
// record and that the commit stage's per-matrix route-usage tally is keyed
// by; the tally itself reads that name from the routing edges, not from
// this site.
type RoutingSwitch struct {
	base
	Matrix string
}

// NewRoutingSwitch returns a routing-switch site belonging to the named
// matrix.
func NewRoutingSwitch(name, matrix string) *RoutingSwitch {
	return &RoutingSwitch{base: newBase(KindRoutingSwitch, name, []string{"IN"}, []string{"OUT"}), Matrix: matrix}
}

// IsUsed is always true: routing switches are infrastructure, not
// cell-placement targets, so the no-load DRC rule must never flag one.
func (r *RoutingSwitch) IsUsed() bool { return true }
