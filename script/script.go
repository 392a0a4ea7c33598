// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script drives a word-valued memory map from Starlark programs, for
// replaying and inspecting emulator memory traces.
package script

import (
	"errors"
	"log"
	"math"
	"slices"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/memmap/memmap"
)

// Machine holds a word store and runs scripts against it.
type Machine struct {
	Verbose bool                      // If set, logs every memory call.
	Map     *memmap.MemoryMap[uint32] // Word store exposed as `mem`.
}

// NewMachine creates a machine whose memory holds capacity words.
func NewMachine(capacity int) (m *Machine) {
	m = &Machine{
		Map: memmap.WithCapacity[uint32](capacity),
	}

	return
}

// Predeclared returns the names visible to a script.
func (m *Machine) Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"mem":            &Memory{machine: m},
		"BASE":           starlark.MakeInt(memmap.BASE),
		"REGISTER_COUNT": starlark.MakeInt(memmap.REGISTER_COUNT),
	}
}

// Exec runs a script. src may be anything starlark.ExecFileOptions accepts.
func (m *Machine) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	m.Map.Verbose = m.Verbose

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", filename, msg)
		},
	}
	opts := syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, m.Predeclared())
	if err != nil {
		script := &ErrScript{Filename: filename, Err: err}
		var eval *starlark.EvalError
		if errors.As(err, &eval) {
			script.Backtrace = eval.Backtrace()
		}
		err = script
	}

	return
}

// Memory is the Starlark view of a Machine's store.
type Memory struct {
	machine *Machine
}

var _ starlark.HasAttrs = (*Memory)(nil)

var memoryMethods = map[string]*starlark.Builtin{
	"get":        starlark.NewBuiltin("get", memoryGet),
	"insert":     starlark.NewBuiltin("insert", memoryInsert),
	"remove":     starlark.NewBuiltin("remove", memoryRemove),
	"or_insert":  starlark.NewBuiltin("or_insert", memoryOrInsert),
	"and_modify": starlark.NewBuiltin("and_modify", memoryAndModify),
	"items":      starlark.NewBuiltin("items", memoryItems),
	"len":        starlark.NewBuiltin("len", memoryLen),
}

func (mem *Memory) String() string        { return mem.machine.Map.String() }
func (mem *Memory) Type() string          { return "memmap" }
func (mem *Memory) Freeze()               {}
func (mem *Memory) Truth() starlark.Bool  { return starlark.True }
func (mem *Memory) Hash() (uint32, error) { return 0, ErrUnhashable(mem.Type()) }

func (mem *Memory) Attr(name string) (starlark.Value, error) {
	method, ok := memoryMethods[name]
	if !ok {
		return nil, nil
	}
	return method.BindReceiver(mem), nil
}

func (mem *Memory) AttrNames() (names []string) {
	for name := range memoryMethods {
		names = append(names, name)
	}
	slices.Sort(names)
	return
}

// wordOf converts a Starlark int to a 32-bit word. Negative values down to
// math.MinInt32 are stored as two's complement.
func wordOf(value starlark.Int) (word uint32, err error) {
	i64, ok := value.Int64()
	if !ok || i64 < math.MinInt32 || i64 > math.MaxUint32 {
		err = ErrWordRange(value.String())
		return
	}

	word = uint32(i64)
	return
}

// addrOf converts a Starlark int to an address.
func addrOf(value starlark.Int) (addr uint32, err error) {
	u64, ok := value.Uint64()
	if !ok || u64 > math.MaxUint32 {
		err = ErrAddressRange(value.String())
		return
	}

	addr = uint32(u64)
	return
}

func optional(value uint32, ok bool) starlark.Value {
	if !ok {
		return starlark.None
	}
	return starlark.MakeUint64(uint64(value))
}

func (mem *Memory) trace(b *starlark.Builtin, args starlark.Tuple, result starlark.Value) {
	if mem.machine.Verbose {
		log.Printf("script: %v%v -> %v", b.Name(), args, result)
	}
}

func unpackAddr(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (mem *Memory, addr uint32, err error) {
	var st_addr starlark.Int
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &st_addr)
	if err != nil {
		return
	}

	mem = b.Receiver().(*Memory)
	addr, err = addrOf(st_addr)
	return
}

func unpackAddrWord(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (mem *Memory, addr uint32, word uint32, err error) {
	var st_addr, st_value starlark.Int
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &st_addr, &st_value)
	if err != nil {
		return
	}

	mem = b.Receiver().(*Memory)
	addr, err = addrOf(st_addr)
	if err != nil {
		return
	}
	word, err = wordOf(st_value)
	return
}

func memoryGet(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result starlark.Value, err error) {
	mem, addr, err := unpackAddr(b, args, kwargs)
	if err != nil {
		return
	}

	result = optional(mem.machine.Map.Get(addr))
	mem.trace(b, args, result)
	return
}

func memoryInsert(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result starlark.Value, err error) {
	mem, addr, word, err := unpackAddrWord(b, args, kwargs)
	if err != nil {
		return
	}

	result = optional(mem.machine.Map.Insert(addr, word))
	mem.trace(b, args, result)
	return
}

func memoryRemove(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result starlark.Value, err error) {
	mem, addr, err := unpackAddr(b, args, kwargs)
	if err != nil {
		return
	}

	result = optional(mem.machine.Map.Remove(addr))
	mem.trace(b, args, result)
	return
}

func memoryOrInsert(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result starlark.Value, err error) {
	mem, addr, word, err := unpackAddrWord(b, args, kwargs)
	if err != nil {
		return
	}

	value := mem.machine.Map.Entry(addr).OrInsert(word)
	result = starlark.MakeUint64(uint64(*value))
	mem.trace(b, args, result)
	return
}

// memoryAndModify replaces an occupied slot's value with fn(value).
func memoryAndModify(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result starlark.Value, err error) {
	var st_addr starlark.Int
	var fn starlark.Callable
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &st_addr, &fn)
	if err != nil {
		return
	}

	mem := b.Receiver().(*Memory)
	addr, err := addrOf(st_addr)
	if err != nil {
		return
	}

	occupied, ok := mem.machine.Map.Entry(addr).Occupied()
	if !ok {
		result = starlark.False
		mem.trace(b, args, result)
		return
	}

	// fn may grow memory, so no entry or pointer is held across the call.
	st_result, err := starlark.Call(thread, fn, starlark.Tuple{starlark.MakeUint64(uint64(occupied.Get()))}, nil)
	if err != nil {
		return
	}

	st_int, ok := st_result.(starlark.Int)
	if !ok {
		err = ErrWordType(st_result.Type())
		return
	}

	word, err := wordOf(st_int)
	if err != nil {
		return
	}

	mem.machine.Map.Insert(addr, word)
	result = starlark.True
	mem.trace(b, args, result)
	return
}

func memoryItems(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result starlark.Value, err error) {
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return
	}

	mem := b.Receiver().(*Memory)
	var items []starlark.Value
	for addr, value := range mem.machine.Map.All() {
		items = append(items, starlark.Tuple{
			starlark.MakeUint64(uint64(addr)),
			starlark.MakeUint64(uint64(*value)),
		})
	}

	result = starlark.NewList(items)
	return
}

func memoryLen(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (result starlark.Value, err error) {
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
	if err != nil {
		return
	}

	mem := b.Receiver().(*Memory)
	result = starlark.MakeInt(mem.machine.Map.Len())
	return
}
