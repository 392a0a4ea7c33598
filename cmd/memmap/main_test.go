package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/memmap/memmap"
)

func writeScript(t *testing.T, dir string, text string) (path string) {
	path = filepath.Join(dir, "test.star")
	err := os.WriteFile(path, []byte(text), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestRun_NegativeCapacity(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	cfg := config{
		Capacity: -1,
		Format:   memmap.FORMAT_JSON,
		Script:   writeScript(t, dir, "mem.insert(1, 1)\n"),
	}

	err := run(cfg, &bytes.Buffer{})
	assert.Equal(ErrCapacity(-1), err)
}

func TestRun_Snapshot(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.cbor")

	cfg := config{
		Capacity: 2,
		Output:   first,
		Format:   memmap.FORMAT_CBOR,
		Script:   writeScript(t, dir, "mem.insert(BASE + 4, 7)\nmem.insert(3, 3)\n"),
	}
	assert.NoError(run(cfg, &bytes.Buffer{}))

	// Reload the snapshot, modify it, and dump to stdout.
	cfg = config{
		Capacity: 0,
		Input:    first,
		Output:   "-",
		Format:   memmap.FORMAT_CBOR,
		Script:   writeScript(t, dir, "mem.and_modify(BASE + 4, lambda v: v + 1)\n"),
	}
	var stdout bytes.Buffer
	assert.NoError(run(cfg, &stdout))

	mm := &memmap.MemoryMap[uint32]{}
	assert.NoError(mm.UnmarshalCBOR(stdout.Bytes()))
	assert.Equal(2, mm.Len())

	value, ok := mm.Get(memmap.BASE + 4)
	assert.True(ok)
	assert.Equal(uint32(8), value)

	value, ok = mm.Get(3)
	assert.True(ok)
	assert.Equal(uint32(3), value)
}

func TestRun_OutputError(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	cfg := config{
		Capacity: 1,
		Output:   filepath.Join(dir, "missing", "out.json"),
		Format:   memmap.FORMAT_JSON,
		Script:   writeScript(t, dir, "mem.insert(BASE, 1)\n"),
	}

	assert.Error(run(cfg, &bytes.Buffer{}))
}

func TestRun_ScriptError(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	cfg := config{
		Capacity: 1,
		Output:   "-",
		Format:   memmap.FORMAT_JSON,
		Script:   writeScript(t, dir, "mem.get(-1)\n"),
	}

	var stdout bytes.Buffer
	assert.Error(run(cfg, &stdout))
	assert.Empty(stdout.Bytes())
}
