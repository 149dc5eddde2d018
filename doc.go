// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package emit composes byte serializers the way parser combinators compose
// parsers, but for writing.
//
// A [Serializer] takes a destination and returns the advanced destination or
// an error. Small primitives are assembled with combinators into encoders
// for binary or text formats, without per-format offset bookkeeping.
//
// # Architecture
//
//   - Destinations: [Dest] accepts bytes. [Patcher] adds position and
//     overwrite for backpatching. [View] is bounded and value-typed,
//     [Buffer] grows, [Stream]/[PatchStream] adapt io writers, [Counter]
//     measures without storing.
//   - Primitives: [Bytes], [String], [Fixed] and the U8..U64 / I8..I64 /
//     F32 / F64 families in both byte orders, [Hex], [Uint], [Printf],
//     [Empty], [Skip].
//   - Combinators: [All], [Pair], [Many], [Repeat], [Cond], [When],
//     [Separated], [Or], [MapErr], [Contramap].
//   - Backpatch: [Backpatch], [LengthPrefixed], [Checksum32], [At].
//   - Driver: [Gen] and [GenWith] retry the whole tree over a larger [View]
//     on [KindInsufficientSpace].
//
// Failures are *[Error] values classified by [Kind]. Composites forward the
// first failure unchanged and evaluate nothing further.
//
// The non-blocking mirror of the engine lives in package
// [code.hybscloud.com/emit/async].
//
// # Example
//
//	frame := emit.All(
//		emit.U8(0x01),
//		emit.LengthPrefixed(4, emit.BigEndian, emit.String("hello")),
//	)
//	b, err := emit.Gen(frame)
//	// b == []byte{0x01, 0, 0, 0, 5, 'h', 'e', 'l', 'l', 'o'}
package emit
