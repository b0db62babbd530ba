package device

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var catalogValidate = validator.New()

// catalogSpec is the declarative, YAML-loadable form of a Part, mirroring
// the way netlist.Module is loaded — both go through the same
// decode-then-validate shape.
type catalogSpec struct {
	ID string `yaml:"id" validate:"required"`

	IOBs        []iobSpec  `yaml:"iobs" validate:"dive"`
	LUTs        []lutSpec  `yaml:"luts" validate:"dive"`
	DFFs        []nameSpec `yaml:"dffs" validate:"dive"`
	Comparators []cmpSpec  `yaml:"comparators" validate:"dive"`
	Oscillators []oscSpec  `yaml:"oscillators" validate:"dive"`
	Counters    []widthSpec `yaml:"counters" validate:"dive"`
	VoltageRefs []nameSpec `yaml:"voltage_refs" validate:"dive"`
	PGAs        []nameSpec `yaml:"pgas" validate:"dive"`

	Matrices []string `yaml:"matrices"`

	ACMPGroups    map[string][]string `yaml:"acmp_groups"`
	PORDoneSignal string              `yaml:"por_done_signal"`
}

type nameSpec struct {
	Name string `yaml:"name" validate:"required"`
}
type iobSpec struct {
	Name string `yaml:"name" validate:"required"`
	Pin  int    `yaml:"pin" validate:"required"`
}
type lutSpec struct {
	Name  string `yaml:"name" validate:"required"`
	Width int    `yaml:"width" validate:"required,min=2,max=4"`
}
type widthSpec struct {
	Name  string `yaml:"name" validate:"required"`
	Width int    `yaml:"width" validate:"required"`
}
type cmpSpec struct {
	Name     string `yaml:"name" validate:"required"`
	Ordinal  int    `yaml:"ordinal"`
	MuxGroup string `yaml:"mux_group"`
	MuxOwner bool   `yaml:"mux_owner"`
}
type oscSpec struct {
	Name   string `yaml:"name" validate:"required"`
	Family string `yaml:"family" validate:"required,oneof=ring lf"`
}

// LoadPart decodes and validates a Part catalog from YAML, then builds a
// fully crossbarred routing table across whatever matrices were declared.
func LoadPart(r io.Reader) (*Part, error) {
	var spec catalogSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("device: decode: %w", err)
	}
	if err := catalogValidate.Struct(&spec); err != nil {
		return nil, fmt.Errorf("device: %s: invalid: %w", spec.ID, err)
	}
	return buildFromSpec(&spec), nil
}

// LoadPartFile opens path and decodes it as a device catalog.
func LoadPartFile(path string) (*Part, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("device: %w", err)
	}
	defer f.Close()
	return LoadPart(f)
}

func buildFromSpec(spec *catalogSpec) *Part {
	p := NewPart(spec.ID)
	if spec.PORDoneSignal != "" {
		p.PORDoneSignal = spec.PORDoneSignal
	}
	for _, s := range spec.IOBs {
		p.AddSite(NewIOB(s.Name, s.Pin))
	}
	for _, s := range spec.LUTs {
		p.AddSite(NewLUT(s.Name, s.Width))
	}
	for _, s := range spec.DFFs {
		p.AddSite(NewDFF(s.Name))
	}
	for _, s := range spec.Comparators {
		c := NewComparator(s.Name, s.Ordinal)
		c.MuxGroup = s.MuxGroup
		c.MuxOwner = s.MuxOwner
		p.AddSite(c)
	}
	for _, s := range spec.Oscillators {
		family := RingOscillator
		if s.Family == "lf" {
			family = LFOscillator
		}
		p.AddSite(NewOscillator(s.Name, family))
	}
	for _, s := range spec.Counters {
		p.AddSite(NewCounter(s.Name, s.Width))
	}
	for _, s := range spec.VoltageRefs {
		p.AddSite(NewVoltageReference(s.Name))
	}
	for _, s := range spec.PGAs {
		p.AddSite(NewPGA(s.Name))
	}
	p.AddSite(NewPowerRail("VDD"))
	p.AddSite(NewPowerRail("GND"))

	for group, members := range spec.ACMPGroups {
		p.ACMPGroups[group] = members
	}

	matrices := spec.Matrices
	if len(matrices) == 0 {
		matrices = []string{"0"}
	}
	for i, m := range matrices {
		p.AddSite(NewRoutingSwitch(fmt.Sprintf("MATRIX_%s", m), m))
		_ = i
	}
	buildFullCrossbar(p, matrices)
	return p
}

// buildFullCrossbar wires every output port of every site to every input
// port of every other site, distributing the resulting edges round-robin
// across the declared matrices. This is the single-step "fully crossbarred
// within its legal reach" fabric model — a real device restricts reach
// further, but modelling that restriction isn't required here, and a full
// crossbar keeps every fixture solvable without a hand-maintained
// reachability table per site pair.
func buildFullCrossbar(p *Part, matrices []string) {
	sites := p.AllSites()
	mi := 0
	next := func() string {
		m := matrices[mi%len(matrices)]
		mi++
		return m
	}
	for _, from := range sites {
		if from.Kind() == KindRoutingSwitch {
			continue
		}
		for _, outPort := range from.Outputs() {
			for _, to := range sites {
				if to.Kind() == KindRoutingSwitch || to.Name() == from.Name() {
					continue
				}
				for _, inPort := range to.Inputs() {
					p.AddReach(RoutingEdge{
						FromSite: from.Name(), FromPort: outPort,
						ToSite: to.Name(), ToPort: inPort,
						Matrix: next(),
					})
				}
			}
		}
	}
}
