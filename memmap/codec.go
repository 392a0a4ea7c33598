package memmap

import (
	"bytes"
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
)

const (
	FORMAT_JSON = "json"
	FORMAT_CBOR = "cbor"
)

// CBOR simple values for null and undefined.
const (
	cborNull      = 0xf6
	cborUndefined = 0xf7
)

var jsonNull = []byte("null")

// wireMap is the serialized layout of a MemoryMap.
type wireMap[V any] struct {
	Registers []Slot[V] `json:"registers" cbor:"registers"`
	Memory    []Slot[V] `json:"memory" cbor:"memory"`
}

func (mm *MemoryMap[V]) toWire() (wire wireMap[V]) {
	wire.Registers = mm.registers[:]
	wire.Memory = mm.memory
	if wire.Memory == nil {
		wire.Memory = []Slot[V]{}
	}
	return
}

func (mm *MemoryMap[V]) fromWire(wire *wireMap[V]) (err error) {
	if len(wire.Registers) != REGISTER_COUNT {
		err = ErrRegisterCount(len(wire.Registers))
		return
	}

	copy(mm.registers[:], wire.Registers)
	mm.memory = wire.Memory

	return
}

// MarshalJSON encodes an absent slot as null, and a present slot as its value.
func (s Slot[V]) MarshalJSON() ([]byte, error) {
	if !s.Present {
		return jsonNull, nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON decodes null as an absent slot.
func (s *Slot[V]) UnmarshalJSON(data []byte) (err error) {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*s = Slot[V]{}
		return
	}

	var value V
	err = json.Unmarshal(data, &value)
	if err != nil {
		return
	}

	*s = Some(value)
	return
}

// MarshalCBOR encodes an absent slot as CBOR null, and a present slot as its
// value.
func (s Slot[V]) MarshalCBOR() ([]byte, error) {
	if !s.Present {
		return []byte{cborNull}, nil
	}
	return cbor.Marshal(s.Value)
}

// UnmarshalCBOR decodes CBOR null or undefined as an absent slot.
func (s *Slot[V]) UnmarshalCBOR(data []byte) (err error) {
	if len(data) == 1 && (data[0] == cborNull || data[0] == cborUndefined) {
		*s = Slot[V]{}
		return
	}

	var value V
	err = cbor.Unmarshal(data, &value)
	if err != nil {
		return
	}

	*s = Some(value)
	return
}

// MarshalJSON encodes the register file and the full memory sequence.
func (mm *MemoryMap[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(mm.toWire())
}

// UnmarshalJSON replaces the map's contents with a decoded snapshot.
func (mm *MemoryMap[V]) UnmarshalJSON(data []byte) (err error) {
	var wire wireMap[V]
	err = json.Unmarshal(data, &wire)
	if err == nil {
		err = mm.fromWire(&wire)
	}
	if err != nil {
		err = &ErrDecode{Format: FORMAT_JSON, Err: err}
	}

	return
}

// MarshalCBOR encodes the register file and the full memory sequence.
func (mm *MemoryMap[V]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(mm.toWire())
}

// UnmarshalCBOR replaces the map's contents with a decoded snapshot.
func (mm *MemoryMap[V]) UnmarshalCBOR(data []byte) (err error) {
	var wire wireMap[V]
	err = cbor.Unmarshal(data, &wire)
	if err == nil {
		err = mm.fromWire(&wire)
	}
	if err != nil {
		err = &ErrDecode{Format: FORMAT_CBOR, Err: err}
	}

	return
}

// Marshal encodes the map in the named format.
func (mm *MemoryMap[V]) Marshal(format string) ([]byte, error) {
	switch format {
	case FORMAT_JSON:
		return mm.MarshalJSON()
	case FORMAT_CBOR:
		return mm.MarshalCBOR()
	default:
		return nil, ErrFormat(format)
	}
}

// Unmarshal decodes the map from the named format.
func (mm *MemoryMap[V]) Unmarshal(format string, data []byte) error {
	switch format {
	case FORMAT_JSON:
		return mm.UnmarshalJSON(data)
	case FORMAT_CBOR:
		return mm.UnmarshalCBOR(data)
	default:
		return ErrFormat(format)
	}
}
