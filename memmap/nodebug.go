//go:build !memmapdebug

package memmap

// DEBUG enables address range assertions on translation.
const DEBUG = false
