// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"code.hybscloud.com/kont"
)

// loop runs step(i) for i in [from, n), each to completion before the next.
// The next step is built only after the previous one resumes.
func loop(from, n int, step func(int) Serializer) kont.Eff[struct{}] {
	if from >= n {
		return kont.Pure(struct{}{})
	}
	if from == n-1 {
		return step(from)()
	}
	return kont.Bind(step(from)(), func(struct{}) kont.Eff[struct{}] {
		return loop(from+1, n, step)
	})
}

// Many writes f(item) for each item in order.
func Many[T any](items []T, f func(T) Serializer) Serializer {
	return func() kont.Eff[struct{}] {
		return loop(0, len(items), func(i int) Serializer { return f(items[i]) })
	}
}

// Repeat writes s n times.
func Repeat(n int, s Serializer) Serializer {
	return func() kont.Eff[struct{}] {
		return loop(0, n, func(int) Serializer { return s })
	}
}

// SeparatedMany writes f(item) for each item with sep strictly between them.
func SeparatedMany[T any](sep Serializer, items []T, f func(T) Serializer) Serializer {
	return func() kont.Eff[struct{}] {
		return loop(0, len(items), func(i int) Serializer {
			if i == 0 {
				return f(items[0])
			}
			return Pair(sep, f(items[i]))
		})
	}
}
