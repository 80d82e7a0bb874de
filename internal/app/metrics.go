package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the application has seen since it started.
type Metrics struct {
	keystrokes     atomic.Uint64
	handled        atomic.Uint64
	selections     atomic.Uint64
	scriptErrors   atomic.Uint64
	reloads        atomic.Uint64
	reloadFailures atomic.Uint64

	startTime time.Time
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Keystrokes     uint64
	Handled        uint64
	Selections     uint64
	ScriptErrors   uint64
	Reloads        uint64
	ReloadFailures uint64
	Uptime         time.Duration
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKeystroke records a key press; handled means a shortcut consumed it.
func (m *Metrics) RecordKeystroke(handled bool) {
	m.keystrokes.Add(1)
	if handled {
		m.handled.Add(1)
	}
}

// RecordSelection records a selected action.
func (m *Metrics) RecordSelection() {
	m.selections.Add(1)
}

// RecordScriptError records a failed action script.
func (m *Metrics) RecordScriptError() {
	m.scriptErrors.Add(1)
}

// RecordReload records a keyset reload attempt.
func (m *Metrics) RecordReload(ok bool) {
	if ok {
		m.reloads.Add(1)
		return
	}
	m.reloadFailures.Add(1)
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Keystrokes:     m.keystrokes.Load(),
		Handled:        m.handled.Load(),
		Selections:     m.selections.Load(),
		ScriptErrors:   m.scriptErrors.Load(),
		Reloads:        m.reloads.Load(),
		ReloadFailures: m.reloadFailures.Load(),
		Uptime:         time.Since(m.startTime),
	}
}

// HandledRate returns the share of keystrokes consumed by shortcuts.
func (s MetricsSnapshot) HandledRate() float64 {
	if s.Keystrokes == 0 {
		return 0
	}
	return float64(s.Handled) / float64(s.Keystrokes)
}
