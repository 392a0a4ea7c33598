package memmap

import (
	"fmt"
)

const (
	REGISTER_COUNT   = 32      // Number of register slots.
	BASE             = 0x10000 // First data memory address.
	WORD_SHIFT       = 2       // log2 of the memory word size in bytes.
	DEFAULT_CAPACITY = 1 << 20 // Default memory length, in words (4MiB).
)

// Store identifies which backing store an address resolves to.
type Store int

const (
	STORE_REGISTER = Store(0) // Register file.
	STORE_MEMORY   = Store(1) // Data memory.
)

func (s Store) String() string {
	switch s {
	case STORE_REGISTER:
		return "register"
	case STORE_MEMORY:
		return "memory"
	default:
		return fmt.Sprintf("Store(%d)", int(s))
	}
}

// Translate maps an address to its store and index within that store.
//
// Memory addresses are not checked for alignment; the low two bits are
// discarded. Addresses in [REGISTER_COUNT, BASE) wrap to a very large
// memory index.
func Translate(addr uint32) (store Store, index uint32) {
	if addr < REGISTER_COUNT {
		return STORE_REGISTER, addr
	}

	if DEBUG && addr < BASE {
		panic(ErrAddress(addr))
	}

	return STORE_MEMORY, (addr - BASE) >> WORD_SHIFT
}

// MemoryAddress is the inverse of Translate for the memory store.
func MemoryAddress(index uint32) uint32 {
	return BASE + (index << WORD_SHIFT)
}
