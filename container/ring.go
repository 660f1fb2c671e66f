// Package container holds small generic data structures shared by the
// traffic core, in the teacher's style of utils/container: minimal,
// allocation-aware, no external dependency.
package container

// Ring is a fixed-capacity FIFO: once Len() == cap, Push evicts the oldest
// element. Used for the fundamental-diagram history (spec §3, §4.7: "FD
// ring buffer of up to 200 {density, flow} samples; on overflow, the oldest
// is discarded").
type Ring[T any] struct {
	data  []T
	start int
	cap   int
}

// NewRing creates a ring buffer of the given capacity. cap must be > 0.
func NewRing[T any](cap int) *Ring[T] {
	if cap <= 0 {
		panic("container: ring capacity must be positive")
	}
	return &Ring[T]{cap: cap}
}

// Push appends value, evicting the oldest element if the ring is full.
func (r *Ring[T]) Push(value T) {
	if len(r.data) < r.cap {
		r.data = append(r.data, value)
		return
	}
	r.data[r.start] = value
	r.start = (r.start + 1) % r.cap
}

// Len returns the number of elements currently stored.
func (r *Ring[T]) Len() int {
	return len(r.data)
}

// Cap returns the ring's fixed capacity.
func (r *Ring[T]) Cap() int {
	return r.cap
}

// Snapshot returns a copy of the elements in insertion order (oldest
// first). Callers must get a copy, never an aliased slice: the host keeps
// it across later Steps that mutate the ring (spec §5). Ring has no
// locking; concurrent callers must serialize access themselves.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, len(r.data))
	if len(r.data) < r.cap {
		copy(out, r.data)
		return out
	}
	n := copy(out, r.data[r.start:])
	copy(out[n:], r.data[:r.start])
	return out
}

// Clear empties the ring without changing its capacity.
func (r *Ring[T]) Clear() {
	r.data = r.data[:0]
	r.start = 0
}
