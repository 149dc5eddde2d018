// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
)

// Queue is a bounded non-blocking byte pipe between one producer and one
// consumer, backed by a lock-free SPSC ring from lfq.
//
// Write accepts as many bytes as fit and returns iox.ErrWouldBlock for the
// rest; Read drains what is available and returns iox.ErrWouldBlock when
// nothing is. A Queue is a ready-made sink for [Writer].
type Queue struct {
	ring     lfq.SPSC[byte]
	capacity int
	written  atomix.Uint64
	drained  atomix.Uint64
}

// NewQueue returns a Queue holding up to capacity bytes.
// capacity should be a power of two.
func NewQueue(capacity int) *Queue {
	q := &Queue{capacity: capacity}
	q.ring.Init(capacity)
	return q
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return q.capacity }

// Write enqueues a prefix of p. Producer side only.
func (q *Queue) Write(p []byte) (int, error) {
	for i := range p {
		if err := q.ring.Enqueue(&p[i]); err != nil {
			q.written.Add(uint64(i))
			return i, err
		}
	}
	q.written.Add(uint64(len(p)))
	return len(p), nil
}

// Read dequeues up to len(p) bytes. Consumer side only.
func (q *Queue) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := q.ring.Dequeue()
		if err != nil {
			if n == 0 {
				return 0, err
			}
			break
		}
		p[n] = b
		n++
	}
	q.drained.Add(uint64(n))
	return n, nil
}

// Written returns the total bytes accepted by Write.
func (q *Queue) Written() uint64 { return q.written.Load() }

// Drained returns the total bytes returned by Read.
func (q *Queue) Drained() uint64 { return q.drained.Load() }
