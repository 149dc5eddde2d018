// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async_test

import (
	"bytes"
	"testing"

	"code.hybscloud.com/emit"
	"code.hybscloud.com/emit/async"
	"code.hybscloud.com/iox"
)

// sink is an in-memory io.Writer + io.WriterAt that accepts at most k
// bytes per call and returns iox.ErrWouldBlock for the rest.
// k == 0 accepts everything.
type sink struct {
	b []byte
	k int
}

func (s *sink) take(n int) int {
	if s.k > 0 && n > s.k {
		return s.k
	}
	return n
}

func (s *sink) Write(p []byte) (int, error) {
	n := s.take(len(p))
	s.b = append(s.b, p[:n]...)
	if n < len(p) {
		return n, iox.ErrWouldBlock
	}
	return n, nil
}

func (s *sink) WriteAt(p []byte, off int64) (int, error) {
	n := s.take(len(p))
	copy(s.b[off:], p[:n])
	if n < len(p) {
		return n, iox.ErrWouldBlock
	}
	return n, nil
}

// stream hides WriteAt, leaving a pure stream sink.
type stream struct {
	s *sink
}

func (st stream) Write(p []byte) (int, error) { return st.s.Write(p) }

// gate accepts nothing while closed.
type gate struct {
	open bool
	b    []byte
}

func (g *gate) Write(p []byte) (int, error) {
	if !g.open {
		return 0, iox.ErrWouldBlock
	}
	g.b = append(g.b, p...)
	return len(p), nil
}

// drive runs s on w through Step and Advance, counting boundaries.
// Fails the test on any error other than iox.ErrWouldBlock.
func drive(tb testing.TB, w *async.Writer, s async.Serializer) (async.Result, int) {
	tb.Helper()
	result, susp := async.Step(s)
	blocks := 0
	for susp != nil {
		var err error
		result, susp, err = async.Advance(w, susp)
		if err != nil {
			if !iox.IsWouldBlock(err) {
				tb.Fatalf("Advance: %v", err)
			}
			blocks++
		}
	}
	return result, blocks
}

func wantBytes(tb testing.TB, got, want []byte) {
	tb.Helper()
	if !bytes.Equal(got, want) {
		tb.Fatalf("got % x, want % x", got, want)
	}
}

func wantKind(tb testing.TB, err error, want emit.Kind) {
	tb.Helper()
	if got := emit.KindOf(err); got != want {
		tb.Fatalf("error kind got %v, want %v (err %v)", got, want, err)
	}
}

func leftOf(tb testing.TB, r async.Result) error {
	tb.Helper()
	err, ok := r.GetLeft()
	if !ok {
		tb.Fatal("expected Left, got Right")
	}
	return err
}
