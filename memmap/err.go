package memmap

import (
	"github.com/ezrec/memmap/translate"
)

var f = translate.From

// ErrAddress is raised, in memmapdebug builds only, when an address falls in
// the unmapped range between the register file and data memory.
type ErrAddress uint32

func (ea ErrAddress) Error() string {
	return f("address 0x%08x is neither a register nor memory", uint32(ea))
}

// ErrRegisterCount reports a decoded register file of the wrong length.
type ErrRegisterCount int

func (erc ErrRegisterCount) Error() string {
	return f("register count %d, expected %d", int(erc), REGISTER_COUNT)
}

func (erc ErrRegisterCount) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterCount)
	return
}

// ErrDecode wraps a failure to decode a serialized map.
type ErrDecode struct {
	Format string
	Err    error
}

func (err *ErrDecode) Error() string {
	return f("%v decode: %v", err.Format, err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}

// ErrFormat reports an unknown serialization format name.
type ErrFormat string

func (ef ErrFormat) Error() string {
	return f("format '%v' unknown", string(ef))
}
