// Package messages keeps the in-process, append-only notification log shown to users.
package messages

import (
	"sync"
	"time"
)

// TimeLayout is the time-of-day stamp prepended to every entry.
const TimeLayout = "15:04:05"

// Log is an ordered, volatile list of timestamped messages.
// The zero value is not usable; use New.
type Log struct {
	mu      sync.Mutex
	entries []string
	now     func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the time source used for entry stamps.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// New creates an empty message log.
func New(opts ...Option) *Log {
	l := &Log{
		entries: []string{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add appends "[HH:MM:SS] message" using the local time of day.
func (l *Log) Add(message string) {
	entry := "[" + l.now().Local().Format(TimeLayout) + "] " + message

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Clear drops every entry.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = []string{}
	l.mu.Unlock()
}

// Messages returns a copy of the entries in append order.
func (l *Log) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
