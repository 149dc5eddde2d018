// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"context"

	"code.hybscloud.com/emit"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"go.uber.org/zap"
)

// writerHandler handles both write-family and error effects.
// Write ops wait on ErrWouldBlock via iox.Backoff. Error ops short-circuit on Throw.
// Value type: passed to the evaluation loop on the stack.
type writerHandler struct {
	w      *Writer
	errCtx *kont.ErrorContext[error]
}

// Dispatch implements kont.Handler for the composed Write+Error handler.
// Dispatch order: Write → Error.
func (h writerHandler) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if aop, ok := op.(asyncDispatcher); ok {
		v, err := dispatchWait(h.w, aop)
		if err != nil {
			return kont.Left[error, struct{}](h.w.fail(wrapSinkError(err))), false
		}
		return v, true
	}
	if eop, ok := op.(errorDispatcher); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[error, struct{}](h.w.fail(h.errCtx.Err)), false
		}
		return v, true
	}
	panic("async: unhandled effect in writerHandler")
}

// dispatchWait blocks until DispatchAsync succeeds or fails hard, backing
// off on iox.ErrWouldBlock with iox.Backoff (I/O readiness waiting).
func dispatchWait(w *Writer, aop asyncDispatcher) (kont.Resumed, error) {
	var bo iox.Backoff
	for {
		v, err := aop.DispatchAsync(w)
		if err == nil {
			return v, nil
		}
		if !iox.IsWouldBlock(err) {
			return nil, err
		}
		bo.Wait()
	}
}

// Exec runs s on w to completion and returns the final position.
// Blocks on iox.ErrWouldBlock via adaptive backoff, without spawning
// goroutines or creating channels. There is no timeout; use ExecContext
// to cancel.
func Exec(w *Writer, s Serializer) (int64, error) {
	wrapped := kont.Map[kont.Resumed, struct{}, Result](s(), func(v struct{}) Result {
		return kont.Right[error](v)
	})
	var errCtx kont.ErrorContext[error]
	h := writerHandler{w: w, errCtx: &errCtx}
	result := kont.Handle(wrapped, h)
	if err, ok := result.GetLeft(); ok {
		return w.pos, err
	}
	return w.pos, nil
}

// ExecContext is Exec driven through Step and Advance, checking ctx at
// every suspension. On cancellation the bytes already accepted by the sink
// stay committed and ctx.Err() is returned.
func ExecContext(ctx context.Context, w *Writer, s Serializer) (int64, error) {
	result, susp := Step(s)
	return steps(ctx, w, result, susp)
}

// ExecExpr is ExecContext for an Expr-world computation.
func ExecExpr(ctx context.Context, w *Writer, e kont.Expr[struct{}]) (int64, error) {
	result, susp := StepExpr(e)
	return steps(ctx, w, result, susp)
}

func steps(ctx context.Context, w *Writer, result Result, susp *Suspension) (int64, error) {
	var bo iox.Backoff
	for susp != nil {
		if err := ctx.Err(); err != nil {
			susp.Discard()
			emit.Logger().Debug("async: serialization cancelled",
				zap.Int64("pos", w.pos),
				zap.Int("inflight", w.inflight),
				zap.Error(err))
			return w.pos, err
		}
		var err error
		result, susp, err = Advance(w, susp)
		if err != nil {
			bo.Wait()
			continue
		}
		bo.Reset()
	}
	if err, ok := result.GetLeft(); ok {
		return w.pos, err
	}
	return w.pos, nil
}
