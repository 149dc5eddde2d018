// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package async_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"code.hybscloud.com/emit"
	"code.hybscloud.com/emit/async"
	"code.hybscloud.com/iox"
)

func TestQueueWriteRead(t *testing.T) {
	skipRace(t)
	q := async.NewQueue(8)
	if q.Cap() != 8 {
		t.Fatalf("cap got %d, want 8", q.Cap())
	}
	n, err := q.Write([]byte("abcd"))
	if n != 4 || err != nil {
		t.Fatalf("write got %d %v", n, err)
	}
	buf := make([]byte, 8)
	n, err = q.Read(buf)
	if n != 4 || err != nil || string(buf[:n]) != "abcd" {
		t.Fatalf("read got %d %q %v", n, buf[:n], err)
	}
	if _, err := q.Read(buf); !iox.IsWouldBlock(err) {
		t.Fatalf("empty read got %v, want ErrWouldBlock", err)
	}
	if q.Written() != 4 || q.Drained() != 4 {
		t.Fatalf("counters got %d/%d, want 4/4", q.Written(), q.Drained())
	}
}

func TestQueueFull(t *testing.T) {
	skipRace(t)
	q := async.NewQueue(8)
	n, err := q.Write(make([]byte, 100))
	if !iox.IsWouldBlock(err) {
		t.Fatalf("got %v, want ErrWouldBlock", err)
	}
	if n == 0 || n >= 100 || q.Written() != uint64(n) {
		t.Fatalf("accepted %d bytes, written %d", n, q.Written())
	}
}

func TestQueueAsWriterSink(t *testing.T) {
	skipRace(t)
	q := async.NewQueue(4)
	w := async.NewWriter(q)
	_, susp := async.Step(async.String("abcdefghij"))
	var out []byte
	buf := make([]byte, 4)
	for susp != nil {
		var err error
		_, susp, err = async.Advance(w, susp)
		if err != nil && !iox.IsWouldBlock(err) {
			t.Fatalf("Advance: %v", err)
		}
		n, _ := q.Read(buf)
		out = append(out, buf[:n]...)
	}
	for {
		n, err := q.Read(buf)
		if err != nil {
			break
		}
		out = append(out, buf[:n]...)
	}
	if string(out) != "abcdefghij" {
		t.Fatalf("got %q, want %q", out, "abcdefghij")
	}
}

func TestPump(t *testing.T) {
	skipRace(t)
	var ref bytes.Buffer
	big := async.Repeat(100, record())
	if _, err := async.Exec(async.NewWriter(&ref), big); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	var out bytes.Buffer
	n, err := async.Pump(context.Background(), big, async.NewQueue(16), &out)
	if err != nil {
		t.Fatalf("Pump: %v", err)
	}
	if n != int64(ref.Len()) {
		t.Fatalf("pumped %d bytes, want %d", n, ref.Len())
	}
	wantBytes(t, out.Bytes(), ref.Bytes())
}

func TestPumpEmpty(t *testing.T) {
	skipRace(t)
	var out bytes.Buffer
	// Every read of the empty queue reports would-block, which is not a failure.
	n, err := async.Pump(context.Background(), async.Empty(), async.NewQueue(16), &out)
	if err != nil || n != 0 || out.Len() != 0 {
		t.Fatalf("got %d %v, want 0 nil", n, err)
	}
}

func TestPumpFailure(t *testing.T) {
	skipRace(t)
	var out bytes.Buffer
	_, err := async.Pump(context.Background(), async.All(async.String("ab"), async.Fail(errBoom)), async.NewQueue(16), &out)
	if err != errBoom {
		t.Fatalf("got %v, want %v", err, errBoom)
	}

	_, err = async.Pump(context.Background(), async.String("ab"), async.NewQueue(16), brokenSink{})
	wantKind(t, err, emit.KindIO)
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("got %v, want closed pipe cause", err)
	}
}

func TestPumpCancelled(t *testing.T) {
	skipRace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	n, err := async.Pump(ctx, async.String("never"), async.NewQueue(16), &out)
	if !errors.Is(err, context.Canceled) || n != 0 {
		t.Fatalf("got %d %v", n, err)
	}
}
