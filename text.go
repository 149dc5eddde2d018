// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"fmt"
	"strconv"
)

// String writes the bytes of s. No charset validation or conversion is done.
func String(s string) Serializer {
	return Bytes([]byte(s))
}

// Hex writes v as upper-case hexadecimal text without a prefix.
func Hex(v uint64) Serializer {
	b := strconv.AppendUint(make([]byte, 0, 16), v, 16)
	for i, c := range b {
		if c >= 'a' {
			b[i] = c - 'a' + 'A'
		}
	}
	return Bytes(b)
}

// HexLower writes v as lower-case hexadecimal text without a prefix.
func HexLower(v uint64) Serializer {
	return Bytes(strconv.AppendUint(make([]byte, 0, 16), v, 16))
}

// Int writes v as decimal text.
func Int(v int64) Serializer {
	return Bytes(strconv.AppendInt(make([]byte, 0, 20), v, 10))
}

// Uint writes v as decimal text.
func Uint(v uint64) Serializer {
	return Bytes(strconv.AppendUint(make([]byte, 0, 20), v, 10))
}

// Printf writes fmt.Sprintf(format, args...).
// The text is formatted once, when the serializer is built.
func Printf(format string, args ...any) Serializer {
	return Bytes(fmt.Appendf(nil, format, args...))
}
