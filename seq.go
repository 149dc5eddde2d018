// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import "iter"

// All applies list left to right, each over the destination produced by
// the previous one. It stops at the first failure and returns it unchanged.
// Nesting All inside All writes the same bytes as flattening the lists.
func All(list ...Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		var err error
		for _, s := range list {
			if d, err = s(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
}

// Pair applies first, then second.
func Pair(first, second Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		d, err := first(d)
		if err != nil {
			return nil, err
		}
		return second(d)
	}
}

// Many applies f(item) for each item in order.
// It is equivalent to All over the generated serializers.
func Many[T any](items []T, f func(T) Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		var err error
		for _, item := range items {
			if d, err = f(item)(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
}

// ManySeq is Many over an iterator. seq must yield the same items every
// time it is ranged over, or retries will not be deterministic.
func ManySeq[T any](seq iter.Seq[T], f func(T) Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		var err error
		for item := range seq {
			if d, err = f(item)(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
}

// Repeat applies s n times.
func Repeat(n int, s Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		var err error
		for range n {
			if d, err = s(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
}

// Cond applies s when ok is true and behaves as [Empty] otherwise.
func Cond(ok bool, s Serializer) Serializer {
	if ok {
		return s
	}
	return Empty()
}

// When evaluates pred once per application, before touching d,
// and applies s if it reports true.
func When(pred func() bool, s Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		if !pred() {
			return d, nil
		}
		return s(d)
	}
}

// Or applies opt when it is non-nil and alt otherwise.
func Or(opt, alt Serializer) Serializer {
	if opt != nil {
		return opt
	}
	return alt
}

// Separated applies list with sep strictly between consecutive elements.
func Separated(sep Serializer, list ...Serializer) Serializer {
	return SeparatedMany(sep, list, func(s Serializer) Serializer { return s })
}

// SeparatedMany applies f(item) for each item with sep between them.
// Zero or one items write no separator.
func SeparatedMany[T any](sep Serializer, items []T, f func(T) Serializer) Serializer {
	return func(d Dest) (Dest, error) {
		var err error
		for i, item := range items {
			if i > 0 {
				if d, err = sep(d); err != nil {
					return nil, err
				}
			}
			if d, err = f(item)(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
}

// MapErr applies f to any failure of s other than insufficient space,
// which is left intact so the growth driver can still retry.
func MapErr(s Serializer, f func(error) error) Serializer {
	return func(d Dest) (Dest, error) {
		d, err := s(d)
		if err == nil {
			return d, nil
		}
		if KindOf(err) == KindInsufficientSpace {
			return nil, err
		}
		return nil, f(err)
	}
}

// Contramap adapts a serializer constructor over B into one over A.
func Contramap[A, B any](f func(A) B, g func(B) Serializer) func(A) Serializer {
	return func(a A) Serializer {
		return g(f(a))
	}
}

// Fail returns a serializer that writes nothing and fails with err.
func Fail(err error) Serializer {
	return func(Dest) (Dest, error) {
		return nil, err
	}
}
