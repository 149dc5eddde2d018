// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package async is the non-blocking mirror of [code.hybscloud.com/emit].
//
// Serializers here are computations built on algebraic effects from
// [code.hybscloud.com/kont]. Every byte-producing primitive performs a
// write-family effect; suspension happens only at those boundaries.
//
// # Architecture
//
//   - Sink: any io.Writer that may take a prefix of the bytes offered and
//     return [code.hybscloud.com/iox.ErrWouldBlock] when it is not ready.
//     io.WriterAt adds backpatching; [Flusher] adds flushing.
//   - State: [Writer] holds the sink, the position and [Writer.Inflight],
//     the bytes of the pending write already accepted, so a resumed write
//     neither duplicates nor skips bytes.
//   - Operations: [Write], [Reserve], [Overwrite], [Position], [Flush].
//   - Combinators: [All], [Pair], [Many], [Repeat], [Cond], [When],
//     [Separated], [Or], [MapErr], [At], [LengthPrefixed], and [Frame] to
//     lift any synchronous emit serializer.
//   - Transport: [Queue] is a bounded lock-free byte pipe via
//     [code.hybscloud.com/lfq].
//   - Expr world: [Reify] and [Reflect] bridge to kont's defunctionalized
//     computations; [ExprWriteThen], [ExprBytes], [ExprPositionBind] and
//     [ExprChunks] are pre-fused for hot paths.
//
// # Integration
//
//   - Stepping: [Step], [StepExpr] and [Advance] evaluate one effect at a
//     time, which fits a proactor or event loop.
//   - Blocking: [Exec], [ExecContext] and [ExecExpr] wait past boundaries
//     using adaptive backoff; [Pump] interleaves encoding into a [Queue] with draining it.
//
// Cancellation leaves bytes already accepted by the sink committed; there is
// no rollback.
//
// # Example
//
//	w := async.NewWriter(sink)
//	_, susp := async.Step(async.All(async.U8(1), async.String("hello")))
//	for susp != nil {
//		var err error
//		if _, susp, err = async.Advance(w, susp); err != nil {
//			continue // retry on ErrWouldBlock
//		}
//	}
package async
