// Package handle provides a generational arena for typed resource handles.
//
// A handle packs a slot index and a generation counter. Removing an entry
// bumps the slot generation, so handles issued before the removal no longer
// resolve even after the slot is reused.
package handle

import "iter"

// ID identifies an arena slot. The zero ID is never issued.
type ID uint64

const indexBits = 32

// Invalid is the zero handle.
const Invalid ID = 0

func makeID(index int, gen uint32) ID {
	return ID(uint64(gen)<<indexBits | uint64(index+1))
}

// Index returns the slot index, or -1 for the invalid handle.
func (id ID) Index() int {
	return int(uint32(id)) - 1
}

// Generation returns the generation the handle was issued for.
func (id ID) Generation() uint32 {
	return uint32(uint64(id) >> indexBits)
}

// Valid reports whether the handle is structurally valid. It does not
// check that the handle is live in any arena.
func (id ID) Valid() bool {
	return id != Invalid
}

type slot[T any] struct {
	gen   uint32
	live  bool
	value T
}

// Arena stores values addressed by generational handles.
// Arena is not safe for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	free  []int
	count int
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) ID {
	var idx int
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{gen: 1})
		idx = len(a.slots) - 1
	}
	s := &a.slots[idx]
	s.live = true
	s.value = v
	a.count++
	return makeID(idx, s.gen)
}

// Get returns the value for id and whether id is live.
func (a *Arena[T]) Get(id ID) (T, bool) {
	if p := a.Ptr(id); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Ptr returns a pointer to the stored value, or nil if id is not live.
// The pointer is invalidated by the next Insert.
func (a *Arena[T]) Ptr(id ID) *T {
	idx := id.Index()
	if idx < 0 || idx >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if !s.live || s.gen != id.Generation() {
		return nil
	}
	return &s.value
}

// Contains reports whether id is live.
func (a *Arena[T]) Contains(id ID) bool {
	return a.Ptr(id) != nil
}

// Remove deletes id and returns the removed value.
func (a *Arena[T]) Remove(id ID) (T, bool) {
	var zero T
	p := a.Ptr(id)
	if p == nil {
		return zero, false
	}
	idx := id.Index()
	s := &a.slots[idx]
	v := s.value
	s.value = zero
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, idx)
	a.count--
	return v, true
}

// Len returns the number of live entries.
func (a *Arena[T]) Len() int {
	return a.count
}

// All iterates over live entries in slot order.
func (a *Arena[T]) All() iter.Seq2[ID, T] {
	return func(yield func(ID, T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.live {
				continue
			}
			if !yield(makeID(i, s.gen), s.value) {
				return
			}
		}
	}
}

// Clear removes every entry. Outstanding handles become stale.
func (a *Arena[T]) Clear() {
	for i := range a.slots {
		if a.slots[i].live {
			var zero T
			a.slots[i].value = zero
			a.slots[i].live = false
			a.slots[i].gen++
			if a.slots[i].gen == 0 {
				a.slots[i].gen = 1
			}
			a.free = append(a.free, i)
		}
	}
	a.count = 0
}
