package capmarshal

import "sync"

// Future is a placeholder for a not-yet-available value (spec §3's
// "future"). It classifies as PassFuture and is transported by slot like a
// Remote, but carries no interface tag (spec §4.4): a future's identity is
// all the far side needs until it resolves, which happens outside this
// core entirely (spec §1, Non-goals — no scheduling, no awaiting here).
type Future struct {
	mu       sync.Mutex
	resolved bool
	value    any
}

// NewFuture returns a new, unresolved Future.
func NewFuture() *Future {
	return &Future{}
}

// Resolve marks f as settled to value. Resolution is local bookkeeping
// only — it has no effect on any Capdata already produced referencing f's
// slot; propagating a resolution across the wire is the hosting runtime's
// job (spec §1).
func (f *Future) Resolve(value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolved = true
	f.value = value
}

// IsResolved reports whether Resolve has been called.
func (f *Future) IsResolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

// Value returns the resolved value and true, or (nil, false) if f is still
// pending.
func (f *Future) Value() (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.resolved {
		return nil, false
	}
	return f.value, true
}
