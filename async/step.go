// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"errors"

	"code.hybscloud.com/emit"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Result is the outcome of an async serialization:
// Right on success, Left with the first failure.
type Result = kont.Either[error, struct{}]

// Suspension is a serialization paused at a write boundary.
type Suspension = kont.Suspension[Result]

// asyncDispatcher is the structural interface for write-family operations.
// DispatchAsync is non-blocking: it returns iox.ErrWouldBlock at the sink
// boundary when the sink cannot make progress.
type asyncDispatcher interface {
	DispatchAsync(w *Writer) (kont.Resumed, error)
}

// errorDispatcher is the structural interface of kont's error operations.
type errorDispatcher interface {
	DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
}

// Step evaluates s until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step(s Serializer) (Result, *Suspension) {
	return StepExpr(Reify(s))
}

// StepExpr is Step for an Expr-world computation.
func StepExpr(e kont.Expr[struct{}]) (Result, *Suspension) {
	wrapped := kont.ExprMap(e, func(v struct{}) Result {
		return kont.Right[error](v)
	})
	return kont.StepExpr(wrapped)
}

// Advance dispatches the suspended operation on w.
//
// On success (nil error), the suspension is consumed and the computation
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is returned unconsumed and may be
// retried once the sink is ready; w.Inflight records accepted bytes.
// Any other failure discards the suspension and returns Left.
func Advance(w *Writer, susp *Suspension) (Result, *Suspension, error) {
	if aop, ok := susp.Op().(asyncDispatcher); ok {
		v, err := aop.DispatchAsync(w)
		if err != nil {
			if iox.IsWouldBlock(err) {
				var zero Result
				return zero, susp, err
			}
			susp.Discard()
			return kont.Left[error, struct{}](w.fail(wrapSinkError(err))), nil, nil
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	if eop, ok := susp.Op().(errorDispatcher); ok {
		var ctx kont.ErrorContext[error]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			return kont.Left[error, struct{}](w.fail(ctx.Err)), nil, nil
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	panic("async: unhandled effect in Advance")
}

// wrapSinkError classifies raw sink errors as emit.KindIO.
func wrapSinkError(err error) error {
	var e *emit.Error
	if errors.As(err, &e) {
		return err
	}
	return emit.IOError(err)
}
