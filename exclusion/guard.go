package exclusion

import "sync"

// Guard wraps a single ExclusionIndex behind a reader-writer lock,
// giving callers the concurrency guarantees from §5: many concurrent
// readers, one writer at a time, every mutation observed atomically.
// This narrows the teacher's WorkerPool (one RWMutex shared by many
// per-tenant indices) down to one RWMutex guarding the single composite
// index this package exposes.
type Guard struct {
	mu  sync.RWMutex
	idx *ExclusionIndex
}

// NewGuard wraps a fresh, empty ExclusionIndex.
func NewGuard() *Guard {
	return &Guard{idx: NewIndex()}
}

// Add acquires the write lock and inserts iv.
func (g *Guard) Add(iv Interval) (Handle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.idx.Add(iv)
}

// RemoveByHandle acquires the write lock and deletes the interval
// identified by h.
func (g *Guard) RemoveByHandle(h Handle) (Interval, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.idx.RemoveByHandle(h)
}

// Remove acquires the write lock and deletes every interval matched by
// probe, per the §4.4 matching rule.
func (g *Guard) Remove(probe Interval) []Interval {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.idx.Remove(probe)
}

// QueryByInterval acquires the read lock and returns every interval
// matched by probe without removing them.
func (g *Guard) QueryByInterval(probe Interval) []Interval {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.QueryByInterval(probe)
}

// QueryByPoint acquires the read lock and returns every interval
// bounding p.
func (g *Guard) QueryByPoint(p Point) []Interval {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.QueryByPoint(p)
}

// QueryByLabel acquires the read lock and returns every interval with
// the given label.
func (g *Guard) QueryByLabel(label string) []Interval {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.QueryByLabel(label)
}

// Status acquires the read lock and classifies p.
func (g *Guard) Status(p Point) Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.Status(p)
}

// IsExcluded acquires the read lock and reports whether p is excluded.
func (g *Guard) IsExcluded(p Point) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.IsExcluded(p)
}

// IsIncluded acquires the read lock and reports whether p is included.
func (g *Guard) IsIncluded(p Point) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.IsIncluded(p)
}

// BatchStatus acquires the read lock exactly once for the whole batch,
// so every point observes the same snapshot of the index (§5).
func (g *Guard) BatchStatus(points []Point) []Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.BatchStatus(points)
}

// Clear acquires the write lock and empties the index.
func (g *Guard) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.idx.Clear()
}

// Len acquires the read lock and returns the number of stored intervals.
func (g *Guard) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.Len()
}

// Stats acquires the read lock and summarizes the index's contents.
func (g *Guard) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.Stats()
}

// Snapshot acquires the read lock and returns every stored interval,
// for callers that need to serialize the index (persistence.Store.Save
// passes its result to the snapshot codec).
func (g *Guard) Snapshot() []Interval {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.idx.Intervals()
}

// Restore acquires the write lock for the whole swap to the already
// decoded ivs, so the replacement is atomic: the prior contents are
// visible to readers right up until the swap completes, never partially.
func (g *Guard) Restore(ivs []Interval) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.idx.LoadIntervals(ivs)
}
