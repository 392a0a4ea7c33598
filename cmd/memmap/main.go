// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/ezrec/memmap/memmap"
	"github.com/ezrec/memmap/script"
	"github.com/ezrec/memmap/translate"
)

var f = translate.From

// ErrCapacity reports a negative memory capacity.
type ErrCapacity int

func (ec ErrCapacity) Error() string {
	return f("capacity %d must not be negative", int(ec))
}

// config holds the command line settings.
type config struct {
	Capacity int
	Input    string
	Output   string
	Format   string
	Verbose  bool
	Script   string
}

// run loads the optional snapshot, runs the script, and writes the resulting
// snapshot. stdout receives the snapshot when Output is "-".
func run(cfg config, stdout io.Writer) (err error) {
	if cfg.Capacity < 0 {
		err = ErrCapacity(cfg.Capacity)
		return
	}

	machine := script.NewMachine(cfg.Capacity)
	machine.Verbose = cfg.Verbose

	// Restore a previous snapshot.
	if len(cfg.Input) != 0 {
		var data []byte
		data, err = os.ReadFile(cfg.Input)
		if err != nil {
			return
		}
		err = machine.Map.Unmarshal(cfg.Format, data)
		if err != nil {
			return
		}
	}

	src, err := os.ReadFile(cfg.Script)
	if err != nil {
		return
	}

	_, err = machine.Exec(cfg.Script, src)
	if err != nil {
		var serr *script.ErrScript
		if errors.As(err, &serr) && len(serr.Backtrace) != 0 {
			log.Print(serr.Backtrace)
		}
		return
	}

	if len(cfg.Output) == 0 {
		return
	}

	data, err := machine.Map.Marshal(cfg.Format)
	if err != nil {
		return
	}

	if cfg.Output == "-" {
		_, err = stdout.Write(data)
		return
	}

	ouf, err := os.Create(cfg.Output)
	if err != nil {
		return
	}

	_, err = ouf.Write(data)
	if err != nil {
		ouf.Close()
		return
	}

	err = ouf.Close()
	return
}

func main() {
	var cfg config

	flag.IntVar(&cfg.Capacity, "c", memmap.DEFAULT_CAPACITY, "Memory capacity, in words")
	flag.StringVar(&cfg.Input, "i", "", "Snapshot to load before running")
	flag.StringVar(&cfg.Output, "o", "", "Snapshot to write after running ('-' for stdout)")
	flag.StringVar(&cfg.Format, "f", memmap.FORMAT_JSON, "Snapshot format (json or cbor)")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: Expected one script, got: %v", os.Args[0], flag.Args())
	}
	cfg.Script = flag.Arg(0)

	err := run(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
