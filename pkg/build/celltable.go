package build

import "github.com/parforge/gopar/pkg/device"

// portDir tags a cell port as an input or an output. Every GreenPAK-style
// cell type gopar recognises declares its netlist-side ports here once, for
// the required-edge builder in netlist_builder.go. The device-side port
// names are not defined here: they come from the site constructors in
// pkg/device/sites_concrete.go, and the strings below use the same names.
type portDir int

const (
	dirIn portDir = iota
	dirOut
)

type cellSpec struct {
	kind      device.Kind
	ports     map[string]portDir
	labelKind string // classLabel() key for every non-IOB kind
}

var cellTable = map[string]cellSpec{
	"GP_IBUF":  {kind: device.KindIOB, ports: map[string]portDir{"OUT": dirOut}},
	"GP_OBUF":  {kind: device.KindIOB, ports: map[string]portDir{"IN": dirIn}},
	"GP_IOBUF": {kind: device.KindIOB, ports: map[string]portDir{"IN": dirIn, "OUT": dirOut}},

	"GP_DFF": {kind: device.KindDFF, ports: map[string]portDir{"D": dirIn, "CLK": dirIn, "nRST": dirIn, "Q": dirOut}, labelKind: "DFF"},

	"GP_LUT2": {kind: device.KindLUT, ports: map[string]portDir{"IN0": dirIn, "IN1": dirIn, "OUT": dirOut}, labelKind: "LUT>=2"},
	"GP_LUT3": {kind: device.KindLUT, ports: map[string]portDir{"IN0": dirIn, "IN1": dirIn, "IN2": dirIn, "OUT": dirOut}, labelKind: "LUT>=3"},
	"GP_LUT4": {kind: device.KindLUT, ports: map[string]portDir{"IN0": dirIn, "IN1": dirIn, "IN2": dirIn, "IN3": dirIn, "OUT": dirOut}, labelKind: "LUT>=4"},

	"GP_ACMP": {kind: device.KindComparator, ports: map[string]portDir{"PLUS": dirIn, "MINUS": dirIn, "OUT": dirOut}, labelKind: "ACMP"},

	"GP_RINGOSC": {kind: device.KindOscillator, ports: map[string]portDir{"PWRDN": dirIn, "CLKOUT": dirOut}, labelKind: "OSC_RING"},
	"GP_LFOSC":   {kind: device.KindOscillator, ports: map[string]portDir{"PWRDN": dirIn, "CLKOUT": dirOut}, labelKind: "OSC_LF"},

	"GP_COUNT8":  {kind: device.KindCounter, ports: map[string]portDir{"CLK": dirIn, "RST": dirIn, "OUT": dirOut}, labelKind: "COUNT8"},
	"GP_COUNT14": {kind: device.KindCounter, ports: map[string]portDir{"CLK": dirIn, "RST": dirIn, "OUT": dirOut}, labelKind: "COUNT14"},

	"GP_VREF": {kind: device.KindVoltageRef, ports: map[string]portDir{"OUT": dirOut}, labelKind: "VREF"},
	"GP_PGA":  {kind: device.KindPGA, ports: map[string]portDir{"IN": dirIn, "OUT": dirOut}, labelKind: "PGA"},
}

// isAnalogDriverKind reports whether a device site kind is a legal analog
// source for a comparator input or an analog-mode IOB. The DRC's
// analog-source/digital-IBUF-mismatch rule does not call it; it tests the
// same two kinds itself.
func isAnalogDriverKind(k device.Kind) bool {
	return k == device.KindVoltageRef || k == device.KindPGA
}
