// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"context"
	"io"

	"code.hybscloud.com/emit"
	"code.hybscloud.com/iox"
)

// Pump runs s into q while draining q into out, interleaving both sides on
// the calling goroutine. It backs off with iox.Backoff only when neither
// side made progress, and does not spawn goroutines or create channels.
//
// Pump returns the number of bytes written to out. It stops at the first
// failure of s, of out, or of ctx; bytes still in q stay there.
func Pump(ctx context.Context, s Serializer, q *Queue, out io.Writer) (int64, error) {
	w := NewWriter(q)
	result, susp := Step(s)
	buf := make([]byte, max(q.Cap(), 1))
	var bo iox.Backoff
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			if susp != nil {
				susp.Discard()
			}
			return total, err
		}
		progress := false
		if susp != nil {
			before := w.pos
			var err error
			result, susp, err = Advance(w, susp)
			if err == nil || w.pos != before {
				progress = true
			}
		}
		if susp == nil {
			if err, ok := result.GetLeft(); ok {
				return total, err
			}
		}
		// Single goroutine: once s is done, an empty read means q is drained.
		n, err := q.Read(buf)
		if err != nil && !iox.IsWouldBlock(err) {
			if susp != nil {
				susp.Discard()
			}
			return total, emit.IOError(err)
		}
		if n > 0 {
			m, err := out.Write(buf[:n])
			total += int64(m)
			if err == nil && m < n {
				err = io.ErrShortWrite
			}
			if err != nil {
				if susp != nil {
					susp.Discard()
				}
				return total, emit.IOError(err)
			}
			progress = true
		}
		if susp == nil && n == 0 {
			return total, nil
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
}
