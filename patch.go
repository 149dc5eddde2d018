// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import "hash"

// Backpatch reserves width bytes, runs body over the advanced destination,
// then renders head(value) into the reserved bytes, where value is what
// body computed. The cursor stays where body left it.
//
// The destination must implement [Patcher]; otherwise Backpatch fails with
// [KindNotImplemented] before writing anything. head must write exactly
// width bytes: a shorter or longer head fails with [KindInvalidInput].
func Backpatch[T any](width int, body func(Dest) (Dest, T, error), head func(T) Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		p, ok := d.(Patcher)
		if !ok {
			return nil, NotImplemented("backpatch needs a patchable destination")
		}
		if width < 0 {
			return nil, InvalidInput("negative placeholder width")
		}
		start := p.Pos()
		d, err := Skip(width)(d)
		if err != nil {
			return nil, err
		}
		d, v, err := body(d)
		if err != nil {
			return nil, err
		}

		buf := make([]byte, width)
		hd, err := head(v)(NewView(buf))
		if err != nil {
			if KindOf(err) == KindInsufficientSpace {
				return nil, InvalidInput("header exceeds placeholder width")
			}
			return nil, err
		}
		if hv, ok := hd.(View); !ok || hv.Pos() != width {
			return nil, InvalidInput("header shorter than placeholder width")
		}

		p, ok = d.(Patcher)
		if !ok {
			return nil, NotImplemented("body returned an unpatchable destination")
		}
		if err := p.Patch(start, buf); err != nil {
			return nil, err
		}
		return d, nil
	}
}

func posOf(d Dest) (int, error) {
	p, ok := d.(Positioner)
	if !ok {
		return 0, NotImplemented("destination does not report its position")
	}
	return p.Pos(), nil
}

// spanned runs body and reports the offsets it wrote between.
func spanned(d Dest, body Serializer) (Dest, int, int, error) {
	from, err := posOf(d)
	if err != nil {
		return nil, 0, 0, err
	}
	d, err = body(d)
	if err != nil {
		return nil, 0, 0, err
	}
	to, err := posOf(d)
	if err != nil {
		return nil, 0, 0, err
	}
	return d, from, to, nil
}

// LengthPrefixed writes the byte length of body as a width-byte integer in
// order e, followed by body. A length that does not fit in width bytes
// fails with [KindInvalidInput].
func LengthPrefixed(width int, e Endian, body Serializer) Serializer {
	return LengthPrefixedPlus(width, e, 0, body)
}

// LengthPrefixedPlus is LengthPrefixed with adjust added to the length,
// for formats whose length field also counts the header or a trailer.
func LengthPrefixedPlus(width int, e Endian, adjust int, body Serializer) Serializer {
	return Backpatch(width, func(d Dest) (Dest, int, error) {
		d, from, to, err := spanned(d, body)
		if err != nil {
			return nil, 0, err
		}
		return d, to - from + adjust, nil
	}, func(n int) Serializer {
		if n < 0 {
			return Fail(InvalidInput("negative length"))
		}
		return Fixed(width, e, uint64(n))
	})
}

// Checksum32 writes a 4-byte digest of body produced by newHash, placed
// before body. The destination must be able to read back committed bytes
// ([Spanner]); otherwise Checksum32 fails with [KindNotImplemented] before
// writing anything.
func Checksum32(e Endian, newHash func() hash.Hash32, body Serializer) Serializer {
	return needSpan(Backpatch(4, func(d Dest) (Dest, uint32, error) {
		b, d, err := spanBytes(d, body)
		if err != nil {
			return nil, 0, err
		}
		h := newHash()
		h.Write(b)
		return d, h.Sum32(), nil
	}, func(sum uint32) Serializer {
		return Fixed(4, e, uint64(sum))
	}))
}

// Checksum64 is Checksum32 with an 8-byte digest.
func Checksum64(e Endian, newHash func() hash.Hash64, body Serializer) Serializer {
	return needSpan(Backpatch(8, func(d Dest) (Dest, uint64, error) {
		b, d, err := spanBytes(d, body)
		if err != nil {
			return nil, 0, err
		}
		h := newHash()
		h.Write(b)
		return d, h.Sum64(), nil
	}, func(sum uint64) Serializer {
		return Fixed(8, e, sum)
	}))
}

func needSpan(s Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		if !canSpan(d) {
			return nil, NotImplemented("checksum needs a readable destination")
		}
		return s(d)
	}
}

func spanBytes(d Dest, body Serializer) ([]byte, Dest, error) {
	d, from, to, err := spanned(d, body)
	if err != nil {
		return nil, nil, err
	}
	sp, ok := d.(Spanner)
	if !ok || !canSpan(d) {
		return nil, nil, NotImplemented("checksum needs a readable destination")
	}
	b, err := sp.Span(from, to-from)
	if err != nil {
		return nil, nil, err
	}
	return b, d, nil
}

// At builds the next serializer from the current offset.
func At(f func(pos int) Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		pos, err := posOf(d)
		if err != nil {
			return nil, err
		}
		return f(pos)(d)
	}
}

// Length measures s with a dry run over a [Counter].
func Length(s Serializer) (int, error) {
	var c Counter
	if _, err := s(&c); err != nil {
		return 0, err
	}
	return c.Len(), nil
}
