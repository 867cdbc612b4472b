package store

import "sync"

// Table is an ordered in-memory collection of entities. Rows keep their
// insertion order, which doubles as the deterministic tie-break for any
// timestamp sort performed by callers. Removal is physical: the row is
// spliced out and later scans never see it.
//
// The mutex protects the slice itself. Field mutation on a row returned by
// FindByID is the caller's responsibility; requests are expected to run
// their mutate-then-persist sequence to completion (mock-server model).
type Table[T any] struct {
	mu   sync.RWMutex
	rows []T
	id   func(T) string
}

// NewTable creates an empty table using the given id accessor.
func NewTable[T any](id func(T) string) *Table[T] {
	return &Table[T]{id: id}
}

// FindByID returns the row with the given id, or false if absent.
func (t *Table[T]) FindByID(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, row := range t.rows {
		if t.id(row) == id {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// First returns the first row matching pred in insertion order.
func (t *Table[T]) First(pred func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, row := range t.rows {
		if pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// Scan returns all rows matching pred, in insertion order. A nil pred
// matches everything. The returned slice is a copy; the rows are not.
func (t *Table[T]) Scan(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if pred == nil || pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// All returns a copy of every row in insertion order.
func (t *Table[T]) All() []T {
	return t.Scan(nil)
}

// Count returns the number of rows matching pred.
func (t *Table[T]) Count(pred func(T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, row := range t.rows {
		if pred == nil || pred(row) {
			n++
		}
	}
	return n
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Insert appends a row at the end of the table.
func (t *Table[T]) Insert(row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
}

// Remove splices out the row with the given id.
// It is idempotent: removing an absent id is a no-op.
func (t *Table[T]) Remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, row := range t.rows {
		if t.id(row) == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return true
		}
	}
	return false
}

// Replace swaps the stored slice wholesale. Used when hydrating from disk.
func (t *Table[T]) Replace(rows []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
}
