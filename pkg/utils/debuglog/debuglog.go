// Package debuglog collects soft failures of a single request (partial pagination,
// unmatched names) so they can be returned next to the result as `debug_logs`.
package debuglog

import (
	"context"
	"fmt"
	"sync"
)

type ctxKey struct{}

// Log is a concurrency-safe, append-only list of messages
type Log struct {
	mu      sync.Mutex
	entries []string
}

// New creates an empty Log
func New() *Log {
	return &Log{}
}

// Add appends a formatted message. Safe to call on a nil Log.
func (l *Log) Add(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the collected messages. Never nil.
func (l *Log) Entries() []string {
	if l == nil {
		return []string{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// With attaches log to ctx
func With(ctx context.Context, log *Log) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// From returns the Log attached to ctx, or nil
func From(ctx context.Context) *Log {
	log, _ := ctx.Value(ctxKey{}).(*Log)
	return log
}

// Add appends to the Log attached to ctx, if any
func Add(ctx context.Context, format string, args ...any) {
	From(ctx).Add(format, args...)
}
