package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestRecordPlacementUpdatesGauges(t *testing.T) {
	reg := NewRegistry()
	reg.RecordPlacement(3, 150, false)

	assert.Equal(t, 3.0, gaugeValue(t, reg.PlacementScore))
	assert.Equal(t, 150.0, gaugeValue(t, reg.PlacementIterations))
	assert.Equal(t, 0.0, gaugeValue(t, reg.PlacementSolved))

	reg.RecordPlacement(0, 42, true)
	assert.Equal(t, 1.0, gaugeValue(t, reg.PlacementSolved))
}

func TestRecordRouteUsageIncrementsPerMatrixCounter(t *testing.T) {
	reg := NewRegistry()
	reg.RecordRouteUsage(map[string]int{"A": 3, "B": 1})

	mfs, err := reg.GetPrometheusRegistry().Gather()
	require.NoError(t, err)

	found := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "gopar_routes_used_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "matrix" {
					found[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, 3.0, found["A"])
	assert.Equal(t, 1.0, found["B"])
}

func TestRecordDiagnosticIncrementsByLevel(t *testing.T) {
	reg := NewRegistry()
	reg.RecordDiagnostic("warning")
	reg.RecordDiagnostic("warning")
	reg.RecordDiagnostic("error")

	mfs, err := reg.GetPrometheusRegistry().Gather()
	require.NoError(t, err)

	found := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "gopar_diagnostics_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "level" {
					found[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, 2.0, found["warning"])
	assert.Equal(t, 1.0, found["error"])
}

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, g.Write(&m))
	return m.GetGauge().GetValue()
}
