package arena

import "iter"

// Id refers to an element of a Pool. It stays valid until the element is
// removed. After that, the slot may be reused, but the old Id will not match
// the new element because the generation differs.
type Id struct {
	Slot int32
	Gen  uint32
}

// NoId is never returned by Pool.Add.
var NoId = Id{Slot: -1}

type poolSlot[T any] struct {
	val   T
	gen   uint32
	alive bool
}

// Pool stores elements in a slice that never moves them around. Removed
// slots go on a free list and are reused by later additions. Iteration is in
// slot order, which makes it deterministic for a given sequence of adds and
// removes.
type Pool[T any] struct {
	slots []poolSlot[T]
	free  []int32
	n     int
}

func (p *Pool[T]) Add(val T) Id {
	var slot int32
	if len(p.free) > 0 {
		slot = p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
	} else {
		p.slots = append(p.slots, poolSlot[T]{})
		slot = int32(len(p.slots) - 1)
	}
	s := &p.slots[slot]
	s.val = val
	s.alive = true
	p.n++
	return Id{Slot: slot, Gen: s.gen}
}

// Get returns a pointer to the element with the given id, or nil if the id
// is stale.
func (p *Pool[T]) Get(id Id) *T {
	if id.Slot < 0 || int(id.Slot) >= len(p.slots) {
		return nil
	}
	s := &p.slots[id.Slot]
	if !s.alive || s.gen != id.Gen {
		return nil
	}
	return &s.val
}

// Remove deletes the element with the given id. It reports false if the id
// is stale.
func (p *Pool[T]) Remove(id Id) bool {
	if p.Get(id) == nil {
		return false
	}
	s := &p.slots[id.Slot]
	var zero T
	s.val = zero
	s.alive = false
	s.gen++
	p.free = append(p.free, id.Slot)
	p.n--
	return true
}

func (p *Pool[T]) Len() int {
	return p.n
}

// All iterates over the live elements in slot order. Removing the element
// currently being visited is allowed. Elements added during iteration may or
// may not be visited.
func (p *Pool[T]) All() iter.Seq2[Id, *T] {
	return func(yield func(Id, *T) bool) {
		for i := range p.slots {
			s := &p.slots[i]
			if !s.alive {
				continue
			}
			if !yield(Id{Slot: int32(i), Gen: s.gen}, &s.val) {
				return
			}
		}
	}
}

// Clear removes every element. Ids from before the Clear stay dead, like
// after Remove. The slots are reused lowest first, so a cleared Pool hands
// out the same slots a new one would.
func (p *Pool[T]) Clear() {
	var zero T
	p.free = p.free[:0]
	for i := len(p.slots) - 1; i >= 0; i-- {
		s := &p.slots[i]
		if s.alive {
			s.val = zero
			s.alive = false
			s.gen++
		}
		p.free = append(p.free, int32(i))
	}
	p.n = 0
}
