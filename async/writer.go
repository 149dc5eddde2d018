// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"io"

	"code.hybscloud.com/emit"
	"code.hybscloud.com/iox"
)

// Writer is the destination state of one async serialization.
//
// The sink is any io.Writer that may accept a prefix of the bytes offered
// and return iox.ErrWouldBlock when it cannot take more right now. A sink
// that also implements io.WriterAt supports backpatching.
//
// A Writer is owned by a single serializer tree; it must not be shared or
// reused for a different encoding after a failure or cancellation.
type Writer struct {
	sink     io.Writer
	pos      int64
	inflight int
	scopes   []func(error) error
}

// NewWriter returns a Writer over sink starting at offset 0.
func NewWriter(sink io.Writer) *Writer {
	return &Writer{sink: sink}
}

// Pos returns the number of bytes the sink has accepted.
func (w *Writer) Pos() int64 { return w.pos }

// Inflight returns how many bytes of the pending write were already
// accepted. It is zero between operations.
func (w *Writer) Inflight() int { return w.inflight }

// push writes the unaccepted suffix of p.
func (w *Writer) push(p []byte) error {
	for w.inflight < len(p) {
		n, err := w.sink.Write(p[w.inflight:])
		w.inflight += n
		w.pos += int64(n)
		if err != nil {
			return err
		}
		if n == 0 {
			return iox.ErrWouldBlock
		}
	}
	w.inflight = 0
	return nil
}

// fail applies the active MapErr scopes, innermost first.
// Insufficient space is left intact, matching emit.MapErr.
func (w *Writer) fail(err error) error {
	if emit.KindOf(err) == emit.KindInsufficientSpace {
		return err
	}
	for i := len(w.scopes) - 1; i >= 0; i-- {
		err = w.scopes[i](err)
	}
	return err
}
