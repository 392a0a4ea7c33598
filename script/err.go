package script

import (
	"github.com/ezrec/memmap/translate"
)

var f = translate.From

// ErrScript locates a failure while running a script.
type ErrScript struct {
	Filename  string
	Backtrace string
	Err       error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Filename, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

type ErrUnhashable string

func (eu ErrUnhashable) Error() string {
	return f("unhashable type: %v", string(eu))
}

type ErrWordRange string

func (ew ErrWordRange) Error() string {
	return f("%v does not fit in a 32-bit word", string(ew))
}

type ErrAddressRange string

func (ea ErrAddressRange) Error() string {
	return f("%v is not a 32-bit address", string(ea))
}

type ErrWordType string

func (ew ErrWordType) Error() string {
	return f("got %v, want int", string(ew))
}
