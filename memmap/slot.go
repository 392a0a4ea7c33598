package memmap

// Slot is a storage cell that is either absent or holds a value.
type Slot[V any] struct {
	Value   V    // Contents, meaningful only when Present.
	Present bool // Set if the slot holds a value.
}

// Some returns a present slot holding value.
func Some[V any](value V) Slot[V] {
	return Slot[V]{Value: value, Present: true}
}

// Get returns the slot's value, and whether it is present.
func (s Slot[V]) Get() (value V, ok bool) {
	if s.Present {
		value, ok = s.Value, true
	}
	return
}

// Ptr returns a pointer to the contained value, or nil if absent.
func (s *Slot[V]) Ptr() *V {
	if !s.Present {
		return nil
	}
	return &s.Value
}

// Set stores value and returns a pointer to it.
func (s *Slot[V]) Set(value V) *V {
	*s = Some(value)
	return &s.Value
}

// Replace stores value and returns the previous slot.
func (s *Slot[V]) Replace(value V) (prior Slot[V]) {
	prior = *s
	*s = Some(value)
	return
}

// Take empties the slot and returns its previous contents.
func (s *Slot[V]) Take() (prior Slot[V]) {
	prior = *s
	*s = Slot[V]{}
	return
}
