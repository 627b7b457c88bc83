package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultRingCapacity bounds the in-memory log sink when no capacity is
// configured.
const DefaultRingCapacity = 1000

// Entry is one captured log record: severity, message, and the component
// that emitted it.
type Entry struct {
	Time      time.Time
	Level     slog.Level
	Message   string
	Component string
}

type ringCore struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
	start    int
	count    int
}

// Ring is a bounded slog.Handler that keeps the most recent records in
// memory, evicting the oldest once capacity is reached. It is an injected
// collaborator, not process-global state: attach it to a logger via New or
// NewFromConfig and read it back with Snapshot.
type Ring struct {
	core  *ringCore
	attrs []slog.Attr
}

// NewRing creates a ring sink holding at most capacity entries.
// Non-positive capacities fall back to DefaultRingCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &Ring{core: &ringCore{
		capacity: capacity,
		entries:  make([]Entry, capacity),
	}}
}

func (r *Ring) Enabled(_ context.Context, level slog.Level) bool {
	return true
}

func (r *Ring) Handle(_ context.Context, record slog.Record) error {
	component := ""
	for _, attr := range r.attrs {
		if attr.Key == FieldComponent {
			component = attrString(attr.Value)
		}
	}
	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == FieldComponent && component == "" {
			component = attrString(attr.Value)
		}
		return true
	})

	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	r.core.append(Entry{
		Time:      timestamp,
		Level:     record.Level,
		Message:   strings.TrimSpace(record.Message),
		Component: component,
	})
	return nil
}

func (r *Ring) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(r.attrs)+len(attrs))
	merged = append(merged, r.attrs...)
	merged = append(merged, attrs...)
	return &Ring{core: r.core, attrs: merged}
}

func (r *Ring) WithGroup(name string) slog.Handler {
	// Groups do not affect the captured fields; entries only keep the
	// component tag.
	return r
}

// Snapshot returns the captured entries, oldest first.
func (r *Ring) Snapshot() []Entry {
	c := r.core
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, 0, c.count)
	for i := 0; i < c.count; i++ {
		out = append(out, c.entries[(c.start+i)%c.capacity])
	}
	return out
}

// Len reports how many entries the ring currently holds.
func (r *Ring) Len() int {
	c := r.core
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (c *ringCore) append(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count < c.capacity {
		c.entries[(c.start+c.count)%c.capacity] = entry
		c.count++
		return
	}
	c.entries[c.start] = entry
	c.start = (c.start + 1) % c.capacity
}
