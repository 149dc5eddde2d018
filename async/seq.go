// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"code.hybscloud.com/kont"
)

// All writes list in order. Each element runs to completion, including
// any suspensions, before the next one starts. The first failure aborts
// the rest.
func All(list ...Serializer) Serializer {
	return func() kont.Eff[struct{}] {
		return loop(0, len(list), func(i int) Serializer { return list[i] })
	}
}

// Pair writes first, then second.
// Fuses Bind + Then.
func Pair(first, second Serializer) Serializer {
	return func() kont.Eff[struct{}] {
		return kont.Bind(first(), func(struct{}) kont.Eff[struct{}] {
			return second()
		})
	}
}

// Separated writes list with sep strictly between consecutive elements.
func Separated(sep Serializer, list ...Serializer) Serializer {
	return SeparatedMany(sep, list, func(s Serializer) Serializer { return s })
}

// Cond writes s when ok is true and nothing otherwise.
func Cond(ok bool, s Serializer) Serializer {
	if ok {
		return s
	}
	return Empty()
}

// When evaluates pred once when the computation is built.
func When(pred func() bool, s Serializer) Serializer {
	return func() kont.Eff[struct{}] {
		if pred() {
			return s()
		}
		return kont.Pure(struct{}{})
	}
}

// Or writes opt when it is non-nil and alt otherwise.
func Or(opt, alt Serializer) Serializer {
	if opt != nil {
		return opt
	}
	return alt
}

// MapErr applies f to any failure raised while s runs, including sink
// failures. Suspension is not a failure and is never mapped.
func MapErr(s Serializer, f func(error) error) Serializer {
	return func() kont.Eff[struct{}] {
		return kont.Then(kont.Perform(enterScope{f: f}),
			kont.Bind(s(), func(struct{}) kont.Eff[struct{}] {
				return kont.Perform(leaveScope{})
			}),
		)
	}
}

// At builds the next serializer from the current offset.
// Fuses Perform(Position{}) + Bind.
func At(f func(pos int64) Serializer) Serializer {
	return func() kont.Eff[struct{}] {
		return kont.Bind(kont.Perform(Position{}), func(pos int64) kont.Eff[struct{}] {
			return f(pos)()
		})
	}
}
