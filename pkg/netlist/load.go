package netlist

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is shared across every Load call rather than constructed once
// per load.
var validate = validator.New()

// Load decodes a Module from YAML and validates it. Malformed fixtures are
// rejected here, before the graph builder ever sees them.
func Load(r io.Reader) (*Module, error) {
	var m Module
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("netlist: decode: %w", err)
	}
	// Fixtures name a cell once, as its map key; backfill Cell.Name from
	// that key so it is always set before validation and so Cell.String()
	// has a diagnostic name to print.
	for key, c := range m.Cells {
		if c.Name == "" {
			c.Name = key
			m.Cells[key] = c
		}
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("netlist: %s: invalid: %w", m.Name, err)
	}
	return &m, nil
}

// LoadFile opens path and decodes it as a netlist module.
func LoadFile(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netlist: %w", err)
	}
	defer f.Close()
	return Load(f)
}
