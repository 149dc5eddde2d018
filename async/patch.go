// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"code.hybscloud.com/emit"
	"code.hybscloud.com/kont"
)

// LengthPrefixed writes a width-byte placeholder, then body, then
// overwrites the placeholder with body's length in order e.
//
// The sink must implement io.WriterAt; otherwise the computation fails with
// emit.KindNotImplemented before any byte is written. A length that does
// not fit in width bytes fails with emit.KindInvalidInput.
func LengthPrefixed(width int, e emit.Endian, body Serializer) Serializer {
	return func() kont.Eff[struct{}] {
		return kont.Bind(kont.Perform(Reserve{Width: width}), func(start int64) kont.Eff[struct{}] {
			return kont.Bind(body(), func(struct{}) kont.Eff[struct{}] {
				return kont.Bind(kont.Perform(Position{}), func(end int64) kont.Eff[struct{}] {
					n := end - start - int64(width)
					b, err := emit.AppendFixed(make([]byte, 0, 8), width, e, uint64(n))
					if err != nil {
						return kont.ThrowError[error, struct{}](err)
					}
					return kont.Perform(Overwrite{Off: start, Data: b})
				})
			})
		})
	}
}

// Frame encodes s synchronously with emit.GenWith and writes the result as
// one resumable write. This brings every emit combinator, backpatching
// included, to sinks that cannot overwrite.
func Frame(s emit.Serializer, opts emit.Options) Serializer {
	return func() kont.Eff[struct{}] {
		b, err := emit.GenWith(s, opts)
		if err != nil {
			return kont.ThrowError[error, struct{}](err)
		}
		return kont.Perform(Write{Data: b})
	}
}
