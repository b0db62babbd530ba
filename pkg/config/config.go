// Package config loads the top-level engine configuration: which part to
// target, the search's seed and iteration budget, and how verbose
// diagnostics should be. It uses the same load-then-validate shape as
// pkg/netlist and pkg/device (gopkg.in/yaml.v3 decode, then
// go-playground/validator/v10), since all three are "read one YAML fixture
// off disk into a validated struct" concerns.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config controls one gopar invocation end to end.
type Config struct {
	Part          string `yaml:"part" validate:"required"`
	Seed          uint64 `yaml:"seed"`
	MaxIterations int    `yaml:"max_iterations" validate:"min=1"`
	LogLevel      string `yaml:"log_level" validate:"omitempty,oneof=info warning error"`
}

// Default returns the engine's out-of-the-box configuration.
func Default() Config {
	return Config{Seed: 1, MaxIterations: 20000, LogLevel: "info"}
}

// Load decodes and validates a Config from r, filling in any field the
// fixture omits from Default.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	applyEnvOverrides(&cfg)
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadFile opens path and loads a Config from it.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// applyEnvOverrides lets GOPAR_PART / GOPAR_SEED / GOPAR_MAX_ITERATIONS /
// GOPAR_LOG_LEVEL override whatever the fixture set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOPAR_PART"); v != "" {
		cfg.Part = v
	}
	if v := os.Getenv("GOPAR_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
	if v := os.Getenv("GOPAR_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxIterations = n
		}
	}
	if v := os.Getenv("GOPAR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
