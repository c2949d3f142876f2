// Package diag is the injected diagnostics boundary of the parsing
// engine. The engine records structured events through a Collector
// instead of logging directly, which keeps the core pure and testable.
package diag

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Collector receives structured pipeline events. Implementations must be
// safe for use from a single parse invocation; the engine never shares a
// collector call across goroutines.
type Collector interface {
	Record(event string, fields map[string]any)
}

// SlogCollector forwards events to a slog.Logger.
type SlogCollector struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewSlog returns a Collector backed by the given logger. A nil logger
// falls back to slog.Default().
func NewSlog(logger *slog.Logger) *SlogCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogCollector{Logger: logger, Level: slog.LevelInfo}
}

func (c *SlogCollector) Record(event string, fields map[string]any) {
	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	c.Logger.Log(context.Background(), c.Level, event, attrs...)
}

// Event is one recorded diagnostic entry.
type Event struct {
	Name   string
	Fields map[string]any
}

// Memory is an in-memory Collector used by tests and by callers that
// want to inspect warnings (e.g. the minimal-data signal) after a parse.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory returns an empty in-memory collector.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Record(event string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	m.events = append(m.events, Event{Name: event, Fields: copied})
}

// Events returns a snapshot of everything recorded so far.
func (m *Memory) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Has reports whether an event with the given name was recorded.
func (m *Memory) Has(name string) bool {
	for _, e := range m.Events() {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Discard is a Collector that drops everything.
type Discard struct{}

func (Discard) Record(string, map[string]any) {}

// MaskPAN redacts the middle of a PAN before it leaves the engine in any
// diagnostic event. "ABCDE1234F" becomes "ABXXXXXX4F".
func MaskPAN(pan string) string {
	if len(pan) < 5 {
		return strings.Repeat("X", len(pan))
	}
	return pan[:2] + strings.Repeat("X", len(pan)-4) + pan[len(pan)-2:]
}

// MaskMobile keeps only the last two digits of a mobile number.
func MaskMobile(mobile string) string {
	if len(mobile) < 3 {
		return strings.Repeat("X", len(mobile))
	}
	return strings.Repeat("X", len(mobile)-2) + mobile[len(mobile)-2:]
}
