// Package pool reuses allocations across parses.
// Used by paramfile for the line buffers of nested @file expansion.
package pool

import "sync"

// Pool is a type-safe wrapper around sync.Pool
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T) // called before reuse
	keep  func(*T) bool
}

// New creates a pool that allocates with factory
func New[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any { return factory() },
		},
	}
}

// NewWithReset creates a pool whose objects are passed to reset before reuse
func NewWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := New(factory)
	p.reset = reset
	return p
}

// Keep sets a filter deciding whether a returned object goes back into the
// pool, e.g. to drop buffers that grew too large.
func (p *Pool[T]) Keep(fn func(*T) bool) *Pool[T] {
	p.keep = fn
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}
	if p.keep != nil && !p.keep(obj) {
		return
	}
	p.pool.Put(obj)
}

// Buffers pools byte slices of initial capacity size. Slices that grew past
// limit are dropped instead of being retained.
func Buffers(size, limit int) *Pool[[]byte] {
	return NewWithReset(
		func() *[]byte {
			buf := make([]byte, 0, size)
			return &buf
		},
		func(buf *[]byte) { *buf = (*buf)[:0] },
	).Keep(func(buf *[]byte) bool { return cap(*buf) <= limit })
}
