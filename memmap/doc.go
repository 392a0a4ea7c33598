// Package memmap implements the sparse, address-keyed working store used by a
// RISC-V style emulator for its register file and word-addressed data memory.
//
// Addresses below REGISTER_COUNT select one of the 32 register slots.
// Addresses at or above BASE select a word slot in a growable memory
// sequence, at index (addr-BASE)>>2. Addresses in between are outside the
// caller contract: translation wraps silently and no check is made unless the
// package is built with the memmapdebug tag.
//
// Every slot is either absent or present. The map never interprets an absent
// slot as a zero value; that choice is left to the caller.
//
// A MemoryMap has no internal locking. Pointers handed out by GetMut, the
// Entry family and VacantEntry.Insert point into the map's backing storage,
// and are invalidated by any later Insert or Entry that grows memory, and by
// IntoInner.
package memmap
