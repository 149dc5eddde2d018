// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit_test

import (
	"bytes"
	"io"
	"testing"

	"code.hybscloud.com/emit"
)

// gen runs s through the growth driver and fails the test on error.
func gen(tb testing.TB, s emit.Serializer) []byte {
	tb.Helper()
	b, err := emit.Gen(s)
	if err != nil {
		tb.Fatalf("Gen: %v", err)
	}
	return b
}

// once runs s over a single view of capacity n, without retries.
func once(s emit.Serializer, n int) ([]byte, error) {
	d, err := emit.Run(s, emit.NewView(make([]byte, n)))
	if err != nil {
		return nil, err
	}
	return d.(emit.View).Bytes(), nil
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

// memFile is an in-memory io.Writer + io.WriterAt + io.ReaderAt.
type memFile struct {
	b []byte
}

func (f *memFile) Write(p []byte) (int, error) {
	f.b = append(f.b, p...)
	return len(p), nil
}

func (f *memFile) WriteAt(p []byte, off int64) (int, error) {
	return copy(f.b[off:], p), nil
}

func (f *memFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(f.b)) {
		return 0, io.EOF
	}
	n := copy(p, f.b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// writeOnlyFile hides ReadAt, so committed bytes cannot be read back.
type writeOnlyFile struct {
	f *memFile
}

func (w writeOnlyFile) Write(p []byte) (int, error) { return w.f.Write(p) }

func (w writeOnlyFile) WriteAt(p []byte, off int64) (int, error) { return w.f.WriteAt(p, off) }
