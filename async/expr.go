// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased values to avoid boxing on the Expr-world hot path.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprPosition    kont.Erased = Position{}
	exprDone        kont.Erased = struct{}{}
)

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprWriteThen writes p and then continues with next.
// Fuses ExprPerform(Write{Data: p}) + ExprThen.
func ExprWriteThen[B any](p []byte, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Write{Data: p}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprBytes writes p and completes.
func ExprBytes(p []byte) kont.Expr[struct{}] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: exprDone, Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = Write{Data: p}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[struct{}](ef)
}

func positionBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(int64) kont.Expr[B])
	result := f(current.(int64))
	return kont.Erased(result.Value), result.Frame
}

// ExprPositionBind reads the cursor and passes it to f.
// Fuses ExprPerform(Position{}) + ExprBind.
func ExprPositionBind[B any](f func(pos int64) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = positionBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprPosition
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprChunks writes each chunk in order, one resumable write per chunk.
// The frames are built up front, so chunks must not change before the
// computation completes.
func ExprChunks(chunks [][]byte) kont.Expr[struct{}] {
	switch len(chunks) {
	case 0:
		return kont.ExprReturn(struct{}{})
	case 1:
		return ExprBytes(chunks[0])
	}
	return ExprWriteThen(chunks[0], ExprChunks(chunks[1:]))
}
