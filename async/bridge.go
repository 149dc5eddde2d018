// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world serializer to an Expr-world computation.
// The result can be stepped with StepExpr or run with ExecExpr.
func Reify(s Serializer) kont.Expr[struct{}] {
	return kont.Reify(s())
}

// Reflect converts an Expr-world builder to a Cont-world serializer.
// build is called once per evaluation; an Expr is evaluated at most once.
func Reflect(build func() kont.Expr[struct{}]) Serializer {
	return func() kont.Eff[struct{}] {
		return kont.Reflect(build())
	}
}
