// Package snapshot hands immutable values from a control context to any
// number of consumers without locks.
//
// A [Store] keeps the latest published value behind an atomic pointer. Each
// [Consumer] owns a dirty flag that Publish sets after the value is stored,
// so a consumer that observes the flag is guaranteed to load a value at least
// as new as the one that raised it. Publishing is last-writer-wins.
package snapshot

import (
	"sync"
	"sync/atomic"
)

// Store holds the latest snapshot of T.
type Store[T any] struct {
	value     atomic.Pointer[T]
	consumers atomic.Pointer[[]*Consumer[T]]

	// mu serialises consumer registration only.
	mu sync.Mutex
}

// Consumer observes a Store through its own dirty flag.
type Consumer[T any] struct {
	store *Store[T]
	dirty atomic.Bool
}

// NewStore returns a Store holding initial.
func NewStore[T any](initial T) *Store[T] {
	s := &Store[T]{}
	s.value.Store(&initial)

	return s
}

// Publish stores v and marks every registered consumer dirty.
func (s *Store[T]) Publish(v T) {
	s.value.Store(&v)

	if list := s.consumers.Load(); list != nil {
		for _, c := range *list {
			c.dirty.Store(true)
		}
	}
}

// Load returns the latest published value.
func (s *Store[T]) Load() T {
	return *s.value.Load()
}

// NewConsumer registers a consumer. It starts dirty so the first
// ConsumeIfDirty delivers the current value.
func (s *Store[T]) NewConsumer() *Consumer[T] {
	c := &Consumer[T]{store: s}
	c.dirty.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()

	var next []*Consumer[T]
	if list := s.consumers.Load(); list != nil {
		next = make([]*Consumer[T], len(*list), len(*list)+1)
		copy(next, *list)
	}

	next = append(next, c)
	s.consumers.Store(&next)

	return c
}

// ConsumeIfDirty clears the dirty flag and returns the latest value when the
// flag was set. It returns the zero value and false otherwise.
func (c *Consumer[T]) ConsumeIfDirty() (T, bool) {
	if !c.dirty.CompareAndSwap(true, false) {
		var zero T
		return zero, false
	}

	return c.store.Load(), true
}

// Dirty reports whether a publish is pending for this consumer.
func (c *Consumer[T]) Dirty() bool {
	return c.dirty.Load()
}

// MarkDirty forces the next ConsumeIfDirty to deliver the current value.
func (c *Consumer[T]) MarkDirty() {
	c.dirty.Store(true)
}
