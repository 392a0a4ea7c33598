package memmap

import (
	"fmt"
)

// handle is a located slot, translated once.
type handle[V any] struct {
	addr  uint32
	store Store
	slot  *Slot[V]
}

// Key returns the address the entry was created for.
func (h handle[V]) Key() uint32 {
	return h.addr
}

func (h handle[V]) String() string {
	state := "vacant"
	if h.slot.Present {
		state = "occupied"
	}
	return fmt.Sprintf("%v %v 0x%x", state, h.store, h.addr)
}

// Entry is a view of a single slot, either occupied or vacant.
//
// An entry refers directly into the map's storage. Do not hold it across any
// other mutating call on the map.
type Entry[V any] struct {
	handle[V]
}

// OccupiedEntry is an entry whose slot holds a value.
type OccupiedEntry[V any] struct {
	handle[V]
}

// VacantEntry is an entry whose slot is absent.
type VacantEntry[V any] struct {
	handle[V]
}

// Occupied returns the occupied view of the entry, if the slot is present.
func (e Entry[V]) Occupied() (occupied OccupiedEntry[V], ok bool) {
	if e.slot.Present {
		occupied, ok = OccupiedEntry[V]{e.handle}, true
	}
	return
}

// Vacant returns the vacant view of the entry, if the slot is absent.
func (e Entry[V]) Vacant() (vacant VacantEntry[V], ok bool) {
	if !e.slot.Present {
		vacant, ok = VacantEntry[V]{e.handle}, true
	}
	return
}

// OrInsert returns the existing value, or stores value if vacant.
func (e Entry[V]) OrInsert(value V) *V {
	if occupied, ok := e.Occupied(); ok {
		return occupied.IntoMut()
	}

	return VacantEntry[V]{e.handle}.Insert(value)
}

// OrInsertWith is OrInsert, calling fn for the value only if vacant.
func (e Entry[V]) OrInsertWith(fn func() V) *V {
	if occupied, ok := e.Occupied(); ok {
		return occupied.IntoMut()
	}

	return VacantEntry[V]{e.handle}.Insert(fn())
}

// AndModify applies fn to the value if the entry is occupied.
func (e Entry[V]) AndModify(fn func(value *V)) Entry[V] {
	if occupied, ok := e.Occupied(); ok {
		occupied.Modify(fn)
	}

	return e
}

// Get returns a copy of the contained value.
func (o OccupiedEntry[V]) Get() V {
	return o.slot.Value
}

// IntoMut returns a pointer to the contained value.
func (o OccupiedEntry[V]) IntoMut() *V {
	return &o.slot.Value
}

// Modify applies fn to the contained value in place.
func (o OccupiedEntry[V]) Modify(fn func(value *V)) {
	fn(&o.slot.Value)
}

// Insert stores value in the vacant slot and returns a pointer to it.
func (v VacantEntry[V]) Insert(value V) *V {
	return v.slot.Set(value)
}
