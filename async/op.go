// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"io"

	"code.hybscloud.com/emit"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Write is the effect operation for appending Data at the cursor.
// Perform(Write{Data: p}) completes once every byte of p was accepted.
type Write struct {
	kont.Phantom[struct{}]
	Data []byte
}

// DispatchAsync handles Write on the writer's sink.
// Non-blocking: returns iox.ErrWouldBlock when the sink stops accepting.
// Bytes accepted before the boundary are recorded in w.Inflight, so the
// retried dispatch resumes exactly after them.
func (op Write) DispatchAsync(w *Writer) (kont.Resumed, error) {
	if err := w.push(op.Data); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// maxReserve is the widest placeholder width.
const maxReserve = 8

var zeros [maxReserve]byte

// Reserve is the effect operation for writing a zero-filled placeholder
// of Width bytes that a later Overwrite fills in.
// Perform(Reserve{Width: n}) resumes with the placeholder's offset.
type Reserve struct {
	kont.Phantom[int64]
	Width int
}

// DispatchAsync handles Reserve on the writer's sink.
// Fails with emit.KindNotImplemented, before writing anything, when the
// sink cannot overwrite, and with emit.KindInvalidInput when Width is not
// one emit.FixedWidth accepts. Non-blocking like Write.
func (op Reserve) DispatchAsync(w *Writer) (kont.Resumed, error) {
	if _, ok := w.sink.(io.WriterAt); !ok {
		return nil, emit.NotImplemented("backpatch needs an io.WriterAt sink")
	}
	if !emit.FixedWidth(op.Width) {
		return nil, emit.InvalidInput("unsupported placeholder width")
	}
	if err := w.push(zeros[:op.Width]); err != nil {
		return nil, err
	}
	return w.pos - int64(op.Width), nil
}

// Overwrite is the effect operation for replacing committed bytes at Off.
// The cursor does not move.
type Overwrite struct {
	kont.Phantom[struct{}]
	Off  int64
	Data []byte
}

// DispatchAsync handles Overwrite on the writer's sink.
// Non-blocking: a short WriteAt with iox.ErrWouldBlock is resumed from
// w.Inflight like Write.
func (op Overwrite) DispatchAsync(w *Writer) (kont.Resumed, error) {
	at, ok := w.sink.(io.WriterAt)
	if !ok {
		return nil, emit.NotImplemented("overwrite needs an io.WriterAt sink")
	}
	if op.Off < 0 || op.Off+int64(len(op.Data)) > w.pos {
		return nil, emit.InvalidInput("patch outside committed range")
	}
	for w.inflight < len(op.Data) {
		n, err := at.WriteAt(op.Data[w.inflight:], op.Off+int64(w.inflight))
		w.inflight += n
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, iox.ErrWouldBlock
		}
	}
	w.inflight = 0
	return struct{}{}, nil
}

// Position is the effect operation for reading the cursor. Never blocks.
type Position struct {
	kont.Phantom[int64]
}

// DispatchAsync handles Position.
func (Position) DispatchAsync(w *Writer) (kont.Resumed, error) {
	return w.pos, nil
}

// Flusher is implemented by sinks that buffer internally.
type Flusher interface {
	Flush() error
}

// Flush is the effect operation for flushing a buffering sink.
// Sinks without [Flusher] complete immediately.
type Flush struct {
	kont.Phantom[struct{}]
}

// DispatchAsync handles Flush. Non-blocking: the sink may return
// iox.ErrWouldBlock and the flush is retried.
func (Flush) DispatchAsync(w *Writer) (kont.Resumed, error) {
	if f, ok := w.sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return nil, err
		}
	}
	return struct{}{}, nil
}

// enterScope and leaveScope bracket a MapErr body.
type enterScope struct {
	kont.Phantom[struct{}]
	f func(error) error
}

func (op enterScope) DispatchAsync(w *Writer) (kont.Resumed, error) {
	w.scopes = append(w.scopes, op.f)
	return struct{}{}, nil
}

type leaveScope struct {
	kont.Phantom[struct{}]
}

func (leaveScope) DispatchAsync(w *Writer) (kont.Resumed, error) {
	if n := len(w.scopes); n > 0 {
		w.scopes = w.scopes[:n-1]
	}
	return struct{}{}, nil
}
