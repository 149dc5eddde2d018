// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"encoding/binary"
	"math"

	"code.hybscloud.com/emit"
	"code.hybscloud.com/kont"
)

// Serializer builds a fresh suspension-aware computation each time it is
// called. The computation performs Write-family effects and suspends only
// at those boundaries.
type Serializer func() kont.Eff[struct{}]

// Empty writes nothing.
func Empty() Serializer {
	return func() kont.Eff[struct{}] {
		return kont.Pure(struct{}{})
	}
}

// Fail throws err through the error effect without writing.
func Fail(err error) Serializer {
	return func() kont.Eff[struct{}] {
		return kont.ThrowError[error, struct{}](err)
	}
}

// Bytes writes p as one resumable write.
// Fuses Perform(Write{Data: p}).
func Bytes(p []byte) Serializer {
	return func() kont.Eff[struct{}] {
		return kont.Perform(Write{Data: p})
	}
}

// String writes the bytes of s without charset handling.
func String(s string) Serializer { return Bytes([]byte(s)) }

// Skip writes n zero bytes. A stream cannot leave holes, so unlike
// emit.Skip the content here is defined.
func Skip(n int) Serializer {
	if n < 0 {
		return Fail(emit.InvalidInput("negative skip"))
	}
	return Bytes(make([]byte, n))
}

// Fixed writes v as a width-byte unsigned integer in order e.
func Fixed(width int, e emit.Endian, v uint64) Serializer {
	b, err := emit.AppendFixed(make([]byte, 0, 8), width, e, v)
	if err != nil {
		return Fail(err)
	}
	return Bytes(b)
}

// FlushPoint flushes a buffering sink.
// Fuses Perform(Flush{}).
func FlushPoint() Serializer {
	return func() kont.Eff[struct{}] {
		return kont.Perform(Flush{})
	}
}

func U8(v uint8) Serializer { return Bytes([]byte{v}) }
func I8(v int8) Serializer  { return U8(uint8(v)) }

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

func F32BE(v float32) Serializer { return U32BE(math.Float32bits(v)) }
func F32LE(v float32) Serializer { return U32LE(math.Float32bits(v)) }
func F64BE(v float64) Serializer { return U64BE(math.Float64bits(v)) }
func F64LE(v float64) Serializer { return U64LE(math.Float64bits(v)) }
