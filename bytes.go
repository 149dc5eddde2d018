// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"encoding/binary"
	"math"
)

// Serializer writes into d and returns the advanced destination.
// A Serializer must be deterministic: the same destination state yields the
// same outcome, which is what makes whole-tree retries safe.
type Serializer func(d Dest) (Dest, error)

// Endian selects byte order for fixed-width integers.
type Endian uint8

const (
	BigEndian Endian = iota
	LittleEndian
)

func (e Endian) String() string {
	if e == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// AppendFixed appends v as a width-byte unsigned integer in order e.
// Widths 1, 2, 3, 4 and 8 are supported. A value that does not fit in
// width bytes fails with [KindInvalidInput]; it is never truncated.
func AppendFixed(dst []byte, width int, e Endian, v uint64) ([]byte, error) {
	if !FixedWidth(width) {
		return dst, InvalidInput("unsupported integer width")
	}
	if width < 8 && v>>(8*width) != 0 {
		return dst, InvalidInput("value overflows integer width")
	}
	for i := range width {
		shift := 8 * i
		if e == BigEndian {
			shift = 8 * (width - 1 - i)
		}
		dst = append(dst, byte(v>>shift))
	}
	return dst, nil
}

// FixedWidth reports whether width is one AppendFixed supports.
func FixedWidth(width int) bool {
	switch width {
	case 1, 2, 3, 4, 8:
		return true
	}
	return false
}

// Bytes writes p verbatim.
func Bytes(p []byte) Serializer {
	return func(d Dest) (Dest, error) {
		return d.Write(p)
	}
}

// Empty writes nothing and always succeeds.
func Empty() Serializer {
	return func(d Dest) (Dest, error) {
		return d, nil
	}
}

// Skip advances the cursor by n bytes. The skipped content is unspecified;
// it is meant as a placeholder that a later patch overwrites.
// Destinations without [Skipper] receive n zero bytes.
func Skip(n int) Serializer {
	return func(d Dest) (Dest, error) {
		if n < 0 {
			return nil, InvalidInput("negative skip")
		}
		if s, ok := d.(Skipper); ok {
			return s.Skip(n)
		}
		return d.Write(make([]byte, n))
	}
}

// Fixed writes v as a width-byte unsigned integer in order e.
func Fixed(width int, e Endian, v uint64) Serializer {
	b, err := AppendFixed(make([]byte, 0, 8), width, e, v)
	if err != nil {
		return Fail(err)
	}
	return Bytes(b)
}

// U8 writes one byte.
func U8(v uint8) Serializer { return Bytes([]byte{v}) }

// I8 writes one signed byte.
func I8(v int8) Serializer { return U8(uint8(v)) }

// Bool writes 1 for true and 0 for false.
func Bool(v bool) Serializer {
	if v {
		return U8(1)
	}
	return U8(0)
}

func U16BE(v uint16) Serializer { return Bytes(binary.BigEndian.AppendUint16(nil, v)) }
func U16LE(v uint16) Serializer { return Bytes(binary.LittleEndian.AppendUint16(nil, v)) }
func U32BE(v uint32) Serializer { return Bytes(binary.BigEndian.AppendUint32(nil, v)) }
func U32LE(v uint32) Serializer { return Bytes(binary.LittleEndian.AppendUint32(nil, v)) }
func U64BE(v uint64) Serializer { return Bytes(binary.BigEndian.AppendUint64(nil, v)) }
func U64LE(v uint64) Serializer { return Bytes(binary.LittleEndian.AppendUint64(nil, v)) }

func I16BE(v int16) Serializer { return U16BE(uint16(v)) }
func I16LE(v int16) Serializer { return U16LE(uint16(v)) }
func I32BE(v int32) Serializer { return U32BE(uint32(v)) }
func I32LE(v int32) Serializer { return U32LE(uint32(v)) }
func I64BE(v int64) Serializer { return U64BE(uint64(v)) }
func I64LE(v int64) Serializer { return U64LE(uint64(v)) }

// U24BE writes the low 24 bits of v, big-endian. v must fit in 24 bits.
func U24BE(v uint32) Serializer { return Fixed(3, BigEndian, uint64(v)) }

// U24LE writes the low 24 bits of v, little-endian. v must fit in 24 bits.
func U24LE(v uint32) Serializer { return Fixed(3, LittleEndian, uint64(v)) }

const (
	minInt24 = -1 << 23
	maxInt24 = 1<<23 - 1
)

// I24BE writes v as a 24-bit two's complement integer, big-endian.
func I24BE(v int32) Serializer {
	if v < minInt24 || v > maxInt24 {
		return Fail(InvalidInput("value overflows 24 bits"))
	}
	return U24BE(uint32(v) & 0xFFFFFF)
}

// I24LE writes v as a 24-bit two's complement integer, little-endian.
func I24LE(v int32) Serializer {
	if v < minInt24 || v > maxInt24 {
		return Fail(InvalidInput("value overflows 24 bits"))
	}
	return U24LE(uint32(v) & 0xFFFFFF)
}

func F32BE(v float32) Serializer { return U32BE(math.Float32bits(v)) }
func F32LE(v float32) Serializer { return U32LE(math.Float32bits(v)) }
func F64BE(v float64) Serializer { return U64BE(math.Float64bits(v)) }
func F64LE(v float64) Serializer { return U64LE(math.Float64bits(v)) }
