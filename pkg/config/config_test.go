package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	cfg, err := Load(strings.NewReader("part: SLG46620\n"))
	require.NoError(t, err)

	assert.Equal(t, "SLG46620", cfg.Part)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, 20000, cfg.MaxIterations)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadHonorsExplicitOverrides(t *testing.T) {
	cfg, err := Load(strings.NewReader("part: SLG46826\nseed: 42\nmax_iterations: 500\nlog_level: warning\n"))
	require.NoError(t, err)

	assert.Equal(t, "SLG46826", cfg.Part)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 500, cfg.MaxIterations)
	assert.Equal(t, "warning", cfg.LogLevel)
}

func TestLoadRejectsMissingPart(t *testing.T) {
	_, err := Load(strings.NewReader("seed: 1\n"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	_, err := Load(strings.NewReader("part: SLG46620\nlog_level: verbose\n"))
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveMaxIterations(t *testing.T) {
	_, err := Load(strings.NewReader("part: SLG46620\nmax_iterations: 0\n"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("part: SLG46620\nbogus_field: 1\n"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesTakePrecedenceOverFixture(t *testing.T) {
	t.Setenv("GOPAR_PART", "SLG46826")
	t.Setenv("GOPAR_SEED", "7")

	cfg, err := Load(strings.NewReader("part: SLG46620\nseed: 1\n"))
	require.NoError(t, err)

	assert.Equal(t, "SLG46826", cfg.Part)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestLoadIgnoresUnparsableEnvOverrides(t *testing.T) {
	t.Setenv("GOPAR_SEED", "not-a-number")

	cfg, err := Load(strings.NewReader("part: SLG46620\nseed: 9\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Seed)
}

func TestDefaultIsValidOnceCompletedWithPart(t *testing.T) {
	cfg := Default()
	cfg.Part = "SLG46620"
	assert.NoError(t, validate.Struct(cfg))
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, 20000, cfg.MaxIterations)
}
