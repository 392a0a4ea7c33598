// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package memmap

import (
	"fmt"
	"iter"
	"log"
	"slices"

	"github.com/ezrec/memmap/internal"
)

// MemoryMap maps register and memory addresses to values of type V.
//
// The zero value is an empty map with no memory allocated; it behaves as
// WithCapacity(0).
type MemoryMap[V any] struct {
	Verbose bool // If set, logs memory growth.

	registers [REGISTER_COUNT]Slot[V] // Register file.
	memory    []Slot[V]               // Data memory, by translated index.
}

// New creates a memory map with DEFAULT_CAPACITY words of memory.
func New[V any]() *MemoryMap[V] {
	return WithCapacity[V](DEFAULT_CAPACITY)
}

// WithCapacity creates a memory map with exactly capacity words of memory.
func WithCapacity[V any](capacity int) (mm *MemoryMap[V]) {
	mm = &MemoryMap[V]{
		memory: make([]Slot[V], capacity),
	}

	return
}

// Len returns the current length of the memory store, in words.
func (mm *MemoryMap[V]) Len() int {
	return len(mm.memory)
}

// Registers returns the register file.
func (mm *MemoryMap[V]) Registers() *[REGISTER_COUNT]Slot[V] {
	return &mm.registers
}

// memorySlot returns the memory slot at index, or nil if not yet allocated.
func (mm *MemoryMap[V]) memorySlot(index uint32) *Slot[V] {
	if uint(index) >= uint(len(mm.memory)) {
		return nil
	}
	return &mm.memory[index]
}

// grow extends memory with absent slots so that index is allocated.
func (mm *MemoryMap[V]) grow(index uint32) {
	old := len(mm.memory)
	if uint(index) < uint(old) {
		return
	}

	size := int(index) + 1
	mm.memory = slices.Grow(mm.memory, size-old)[:size]
	clear(mm.memory[old:])

	if mm.Verbose {
		log.Printf("memmap: grow %d -> %d words", old, size)
	}
}

// Get returns the value at addr, and whether it is present.
func (mm *MemoryMap[V]) Get(addr uint32) (value V, ok bool) {
	if addr < REGISTER_COUNT {
		return mm.registers[addr].Get()
	}

	_, index := Translate(addr)
	slot := mm.memorySlot(index)
	if slot == nil {
		return
	}

	return slot.Get()
}

// GetMut returns a pointer to the value at addr, or nil if absent.
func (mm *MemoryMap[V]) GetMut(addr uint32) *V {
	if addr < REGISTER_COUNT {
		return mm.registers[addr].Ptr()
	}

	_, index := Translate(addr)
	slot := mm.memorySlot(index)
	if slot == nil {
		return nil
	}

	return slot.Ptr()
}

// Insert stores value at addr, growing memory if needed, and returns the
// prior value if one was present.
func (mm *MemoryMap[V]) Insert(addr uint32, value V) (prior V, ok bool) {
	if addr < REGISTER_COUNT {
		return mm.registers[addr].Replace(value).Get()
	}

	_, index := Translate(addr)
	mm.grow(index)

	return mm.memory[index].Replace(value).Get()
}

// Remove marks the slot at addr absent and returns its prior value if one
// was present. Memory is never grown.
func (mm *MemoryMap[V]) Remove(addr uint32) (prior V, ok bool) {
	if addr < REGISTER_COUNT {
		return mm.registers[addr].Take().Get()
	}

	_, index := Translate(addr)
	slot := mm.memorySlot(index)
	if slot == nil {
		return
	}

	return slot.Take().Get()
}

// Entry locates the slot for addr, growing memory if needed, for in-place
// inspection, insertion or modification.
func (mm *MemoryMap[V]) Entry(addr uint32) Entry[V] {
	store, index := Translate(addr)

	var slot *Slot[V]
	switch store {
	case STORE_REGISTER:
		slot = &mm.registers[index]
	default:
		mm.grow(index)
		slot = &mm.memory[index]
	}

	return Entry[V]{handle[V]{addr: addr, store: store, slot: slot}}
}

// IntoInner hands the memory store to the caller. The register file is
// discarded and the map is left empty.
func (mm *MemoryMap[V]) IntoInner() (memory []Slot[V]) {
	memory = mm.memory
	*mm = MemoryMap[V]{Verbose: mm.Verbose}

	return
}

// Clone returns a copy of the map. Values are copied by assignment.
func (mm *MemoryMap[V]) Clone() *MemoryMap[V] {
	return &MemoryMap[V]{
		Verbose:   mm.Verbose,
		registers: mm.registers,
		memory:    slices.Clone(mm.memory),
	}
}

func (mm *MemoryMap[V]) registerSeq() iter.Seq2[uint32, *V] {
	return func(yield func(addr uint32, value *V) bool) {
		for n := range mm.registers {
			value := mm.registers[n].Ptr()
			if value == nil {
				continue
			}
			if !yield(uint32(n), value) {
				return
			}
		}
	}
}

func (mm *MemoryMap[V]) memorySeq() iter.Seq2[uint32, *V] {
	return func(yield func(addr uint32, value *V) bool) {
		for n := range mm.memory {
			value := mm.memory[n].Ptr()
			if value == nil {
				continue
			}
			if !yield(MemoryAddress(uint32(n)), value) {
				return
			}
		}
	}
}

// All iterates over every present slot, registers first, then memory in
// ascending address order.
func (mm *MemoryMap[V]) All() iter.Seq2[uint32, *V] {
	return internal.IterSeq2Concat(mm.registerSeq(), mm.memorySeq())
}

// Addresses iterates over the address of every present slot.
func (mm *MemoryMap[V]) Addresses() iter.Seq[uint32] {
	return internal.IterSeq2Keys(mm.All())
}

// String summarizes slot occupancy.
func (mm *MemoryMap[V]) String() string {
	var regs, words int
	for range mm.registerSeq() {
		regs++
	}
	for range mm.memorySeq() {
		words++
	}

	return fmt.Sprintf("MemoryMap{registers: %d/%d, memory: %d/%d}",
		regs, REGISTER_COUNT, words, len(mm.memory))
}
