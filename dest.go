// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"io"
	"slices"
)

// Dest is the minimal destination capability: accept bytes at the cursor.
//
// Write either commits all of p and returns the advanced destination, or
// returns an error. A bounded destination commits nothing on failure and
// reports [KindInsufficientSpace] with the exact shortfall. A writer-backed
// destination fails with [KindIO] and may already have handed a prefix of p
// to its writer; its Pos counts that prefix. Write must not retain or
// modify p.
type Dest interface {
	Write(p []byte) (Dest, error)
}

// Positioner reports the current write offset.
type Positioner interface {
	Pos() int
}

// Patcher is the extended capability required for backpatching.
// Patch overwrites already committed bytes at off without moving the cursor.
// off+len(p) must not exceed Pos.
type Patcher interface {
	Dest
	Positioner
	Patch(off int, p []byte) error
}

// Skipper advances the cursor by n bytes without defined content.
type Skipper interface {
	Skip(n int) (Dest, error)
}

// Spanner reads back n committed bytes starting at off.
type Spanner interface {
	Span(off, n int) ([]byte, error)
}

// canSpan reports whether d can read back what it committed.
// A Spanner may also implement CanSpan() bool when that depends on the
// writer it wraps.
func canSpan(d Dest) bool {
	sp, ok := d.(Spanner)
	if !ok {
		return false
	}
	if c, ok := sp.(interface{ CanSpan() bool }); ok {
		return c.CanSpan()
	}
	return true
}

func checkPatch(off, n, pos int) error {
	if off < 0 || n < 0 || off+n > pos {
		return InvalidInput("patch outside committed range")
	}
	return nil
}

// View is a bounded destination over caller-owned storage.
// It is a value: every successful Write returns a new View sharing the
// same storage, so a View can be replayed from any earlier state.
type View struct {
	buf []byte
	pos int
}

// NewView returns a View writing from the start of buf. Capacity is len(buf).
func NewView(buf []byte) View {
	return View{buf: buf}
}

// Write implements [Dest].
func (v View) Write(p []byte) (Dest, error) {
	if r := len(v.buf) - v.pos; len(p) > r {
		return nil, InsufficientSpace(len(p) - r)
	}
	v.pos += copy(v.buf[v.pos:], p)
	return v, nil
}

// Skip implements [Skipper]. Skipped bytes keep whatever the storage held.
func (v View) Skip(n int) (Dest, error) {
	if n < 0 {
		return nil, InvalidInput("negative skip")
	}
	if r := len(v.buf) - v.pos; n > r {
		return nil, InsufficientSpace(n - r)
	}
	v.pos += n
	return v, nil
}

// Pos implements [Positioner].
func (v View) Pos() int { return v.pos }

// Cap returns the total capacity of the view.
func (v View) Cap() int { return len(v.buf) }

// Available returns the bytes left before the view is full.
func (v View) Available() int { return len(v.buf) - v.pos }

// Bytes returns the committed bytes.
func (v View) Bytes() []byte { return v.buf[:v.pos] }

// Patch implements [Patcher].
func (v View) Patch(off int, p []byte) error {
	if err := checkPatch(off, len(p), v.pos); err != nil {
		return err
	}
	copy(v.buf[off:], p)
	return nil
}

// Span implements [Spanner].
func (v View) Span(off, n int) ([]byte, error) {
	if err := checkPatch(off, n, v.pos); err != nil {
		return nil, err
	}
	return v.buf[off : off+n], nil
}

// Buffer is a growable destination. It never reports insufficient space.
type Buffer struct {
	b []byte
}

// NewBuffer returns an empty Buffer with room for capacity bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{b: make([]byte, 0, max(capacity, 0))}
}

// Write implements [Dest].
func (b *Buffer) Write(p []byte) (Dest, error) {
	b.b = append(b.b, p...)
	return b, nil
}

// Skip implements [Skipper]. Content of the skipped range is unspecified.
func (b *Buffer) Skip(n int) (Dest, error) {
	if n < 0 {
		return nil, InvalidInput("negative skip")
	}
	b.b = slices.Grow(b.b, n)[:len(b.b)+n]
	return b, nil
}

// Pos implements [Positioner].
func (b *Buffer) Pos() int { return len(b.b) }

// Len returns the number of committed bytes.
func (b *Buffer) Len() int { return len(b.b) }

// Bytes returns the committed bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.b }

// Reset discards committed bytes and keeps the storage.
func (b *Buffer) Reset() { b.b = b.b[:0] }

// Patch implements [Patcher].
func (b *Buffer) Patch(off int, p []byte) error {
	if err := checkPatch(off, len(p), len(b.b)); err != nil {
		return err
	}
	copy(b.b[off:], p)
	return nil
}

// Span implements [Spanner].
func (b *Buffer) Span(off, n int) ([]byte, error) {
	if err := checkPatch(off, n, len(b.b)); err != nil {
		return nil, err
	}
	return b.b[off : off+n], nil
}

// Stream adapts an io.Writer. It supports the minimal capability and
// reports its position; it cannot patch. After a short or failed write,
// Pos includes the bytes the writer accepted.
type Stream struct {
	w   io.Writer
	pos int
}

// NewStream returns a Stream over w, starting at offset 0.
func NewStream(w io.Writer) *Stream {
	return &Stream{w: w}
}

func (s *Stream) write(p []byte) error {
	n, err := s.w.Write(p)
	s.pos += n
	if err != nil {
		return IOError(err)
	}
	if n < len(p) {
		return IOError(io.ErrShortWrite)
	}
	return nil
}

// Write implements [Dest].
func (s *Stream) Write(p []byte) (Dest, error) {
	if err := s.write(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Pos implements [Positioner].
func (s *Stream) Pos() int { return s.pos }

// WriterAt is a writer that can also overwrite earlier offsets, such as *os.File.
type WriterAt interface {
	io.Writer
	io.WriterAt
}

// PatchStream is a Stream whose writer also implements io.WriterAt.
// Offsets are relative to where the stream started. When the writer is
// also an io.ReaderAt, such as *os.File, committed bytes can be read back.
type PatchStream struct {
	Stream
	at   io.WriterAt
	rd   io.ReaderAt
	base int64
}

// NewPatchStream returns a PatchStream over w. base is the absolute offset
// of w's cursor when the stream starts, used to translate patches.
func NewPatchStream(w WriterAt, base int64) *PatchStream {
	rd, _ := w.(io.ReaderAt)
	return &PatchStream{Stream: Stream{w: w}, at: w, rd: rd, base: base}
}

// Write implements [Dest].
func (s *PatchStream) Write(p []byte) (Dest, error) {
	if err := s.write(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Patch implements [Patcher].
func (s *PatchStream) Patch(off int, p []byte) error {
	if err := checkPatch(off, len(p), s.pos); err != nil {
		return err
	}
	if _, err := s.at.WriteAt(p, s.base+int64(off)); err != nil {
		return IOError(err)
	}
	return nil
}

// CanSpan reports whether the writer supports io.ReaderAt.
func (s *PatchStream) CanSpan() bool { return s.rd != nil }

// Span implements [Spanner] by reading back from the writer.
func (s *PatchStream) Span(off, n int) ([]byte, error) {
	if s.rd == nil {
		return nil, NotImplemented("stream writer cannot read back")
	}
	if err := checkPatch(off, n, s.pos); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if m, err := s.rd.ReadAt(b, s.base+int64(off)); m < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, IOError(err)
	}
	return b, nil
}

// Counter is a dry-run destination. It stores nothing and counts bytes,
// so any serializer can be measured before storage is allocated.
type Counter struct {
	n int
}

// Write implements [Dest].
func (c *Counter) Write(p []byte) (Dest, error) {
	c.n += len(p)
	return c, nil
}

// Skip implements [Skipper].
func (c *Counter) Skip(n int) (Dest, error) {
	if n < 0 {
		return nil, InvalidInput("negative skip")
	}
	c.n += n
	return c, nil
}

// Pos implements [Positioner].
func (c *Counter) Pos() int { return c.n }

// Len returns the number of bytes counted.
func (c *Counter) Len() int { return c.n }

// Patch implements [Patcher]. Only bounds are checked.
func (c *Counter) Patch(off int, p []byte) error {
	return checkPatch(off, len(p), c.n)
}

// Span implements [Spanner]. The counter keeps no content, so the span is zeros.
func (c *Counter) Span(off, n int) ([]byte, error) {
	if err := checkPatch(off, n, c.n); err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}
