// Package diag provides the three-level diagnostic sink threaded through
// the placement engine and the DRC catalog, so that printing is abstracted
// behind a sink passed through the engine and tests can capture
// diagnostics instead of scraping stdout.
//
// It is narrowed to three severities — INFO, WARNING, ERROR — and
// specialised so that ERROR ("fatal") terminates the run rather than just
// being a log level a caller happens to filter on.
package diag

import (
	"fmt"
	"io"
	"os"
)

// Level is a diagnostic severity.
type Level int

const (
	// InfoLevel reports a synthesised configuration decision, e.g. DRC
	// auto-enabling a shared comparator mux.
	InfoLevel Level = iota
	// WarningLevel reports a non-fatal issue such as a no-load net.
	WarningLevel
	// FatalLevel reports a legality violation that must stop the run.
	FatalLevel
)

func (l Level) String() string {
	switch l {
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case FatalLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Entry is a single recorded diagnostic. Entity is the diagnostic name of
// the offending netlist/device entity, filled in so a fatal DRC failure
// identifies what it failed on.
type Entry struct {
	Level  Level
	Rule   string
	Entity string
	Msg    string
}

func (e Entry) String() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: [%s] %s: %s", e.Level, e.Rule, e.Entity, e.Msg)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Level, e.Rule, e.Msg)
}

// FatalError is returned by callers (typically the DRC runner) once a
// FatalLevel entry has been recorded, so that cmd/gopar can turn it into a
// non-zero exit status.
type FatalError struct {
	Entry Entry
}

func (e *FatalError) Error() string { return e.Entry.String() }

// Sink receives diagnostics from the builders, engine, commit stage and DRC
// catalog. Info and Warning never alter control flow; Fatal is expected to
// cause the caller to stop and surface a FatalError.
type Sink interface {
	Info(rule, entity, format string, args ...any)
	Warning(rule, entity, format string, args ...any)
	Fatal(rule, entity, format string, args ...any)
	// Entries returns every diagnostic recorded so far, in order.
	Entries() []Entry
}

// WriterSink writes each diagnostic as one line to w (stdout/stderr in
// production) and also retains every entry, so it stays inspectable after
// the fact.
type WriterSink struct {
	w       io.Writer
	entries []Entry
}

// NewWriterSink returns a Sink that writes to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// NewStderrSink returns a Sink that writes to os.Stderr, the default for
// cmd/gopar.
func NewStderrSink() *WriterSink {
	return NewWriterSink(os.Stderr)
}

func (s *WriterSink) record(level Level, rule, entity, format string, args ...any) Entry {
	e := Entry{Level: level, Rule: rule, Entity: entity, Msg: fmt.Sprintf(format, args...)}
	s.entries = append(s.entries, e)
	fmt.Fprintln(s.w, e.String())
	return e
}

func (s *WriterSink) Info(rule, entity, format string, args ...any) {
	s.record(InfoLevel, rule, entity, format, args...)
}

func (s *WriterSink) Warning(rule, entity, format string, args ...any) {
	s.record(WarningLevel, rule, entity, format, args...)
}

func (s *WriterSink) Fatal(rule, entity, format string, args ...any) {
	s.record(FatalLevel, rule, entity, format, args...)
}

func (s *WriterSink) Entries() []Entry { return s.entries }

// CaptureSink records diagnostics without writing them anywhere, for tests
// that assert on which diagnostics fired.
type CaptureSink struct {
	entries []Entry
}

// NewCaptureSink returns an empty capturing sink.
func NewCaptureSink() *CaptureSink { return &CaptureSink{} }

func (s *CaptureSink) Info(rule, entity, format string, args ...any) {
	s.entries = append(s.entries, Entry{Level: InfoLevel, Rule: rule, Entity: entity, Msg: fmt.Sprintf(format, args...)})
}

func (s *CaptureSink) Warning(rule, entity, format string, args ...any) {
	s.entries = append(s.entries, Entry{Level: WarningLevel, Rule: rule, Entity: entity, Msg: fmt.Sprintf(format, args...)})
}

func (s *CaptureSink) Fatal(rule, entity, format string, args ...any) {
	s.entries = append(s.entries, Entry{Level: FatalLevel, Rule: rule, Entity: entity, Msg: fmt.Sprintf(format, args...)})
}

func (s *CaptureSink) Entries() []Entry { return s.entries }

// HasFatal reports whether any FatalLevel entry has been recorded.
func (s *CaptureSink) HasFatal() bool {
	for _, e := range s.entries {
		if e.Level == FatalLevel {
			return true
		}
	}
	return false
}
