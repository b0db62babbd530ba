package metrics

import "github.com/parforge/gopar/pkg/diag"

// InstrumentedSink wraps a diag.Sink and increments DiagnosticsTotal for
// every entry recorded, so cmd/gopar can hand the engine one sink that both
// prints/captures diagnostics and feeds the metrics registry.
type InstrumentedSink struct {
	inner diag.Sink
	reg   *Registry
}

// Wrap returns a Sink that forwards every call to inner and records it in
// reg.
func Wrap(inner diag.Sink, reg *Registry) *InstrumentedSink {
	return &InstrumentedSink{inner: inner, reg: reg}
}

func (s *InstrumentedSink) Info(rule, entity, format string, args ...any) {
	s.inner.Info(rule, entity, format, args...)
	s.reg.RecordDiagnostic("info")
}

func (s *InstrumentedSink) Warning(rule, entity, format string, args ...any) {
	s.inner.Warning(rule, entity, format, args...)
	s.reg.RecordDiagnostic("warning")
}

func (s *InstrumentedSink) Fatal(rule, entity, format string, args ...any) {
	s.inner.Fatal(rule, entity, format, args...)
	s.reg.RecordDiagnostic("error")
}

func (s *InstrumentedSink) Entries() []diag.Entry { return s.inner.Entries() }
