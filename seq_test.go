// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit_test

import (
	"errors"
	"slices"
	"strconv"
	"testing"
	"testing/quick"

	"code.hybscloud.com/emit"
)

func TestAllOverBuffer(t *testing.T) {
	buf := emit.NewBuffer(0)
	d, err := emit.Run(emit.All(emit.String("abcd"), emit.String("efgh"), emit.String("ijkl")), buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := string(d.(*emit.Buffer).Bytes()); got != "abcdefghijkl" {
		t.Fatalf("got %q, want %q", got, "abcdefghijkl")
	}
}

func TestAllAssociative(t *testing.T) {
	check := func(a, b, c []byte) bool {
		sa, sb, sc := emit.Bytes(a), emit.Bytes(b), emit.Bytes(c)
		left := gen(t, emit.All(emit.All(sa, sb), sc))
		right := gen(t, emit.All(sa, emit.All(sb, sc)))
		pair := gen(t, emit.Pair(sa, emit.Pair(sb, sc)))
		flat := gen(t, emit.All(sa, sb, sc))
		return string(left) == string(right) && string(right) == string(pair) && string(pair) == string(flat)
	}
	if err := quick.Check(check, nil); err != nil {
		t.Error(err)
	}
}

func TestAllShortCircuits(t *testing.T) {
	calls := 0
	s := emit.All(
		emit.U8(1),
		emit.Fail(emit.Custom(7, "stop")),
		emit.When(func() bool { calls++; return true }, emit.U8(2)),
	)
	_, err := once(s, 16)
	if !errors.Is(err, emit.ErrCustom) {
		t.Fatalf("got %v, want custom failure", err)
	}
	var e *emit.Error
	if !errors.As(err, &e) || e.Code != 7 {
		t.Fatalf("code got %v, want 7", err)
	}
	if calls != 0 {
		t.Fatalf("later serializer evaluated %d times", calls)
	}
}

func TestAllEmptyList(t *testing.T) {
	wantBytes(t, gen(t, emit.All()), []byte{})
}

func TestManyAndRepeat(t *testing.T) {
	got := gen(t, emit.Many([]uint16{1, 2}, emit.U16BE))
	wantBytes(t, got, []byte{0, 1, 0, 2})

	got = gen(t, emit.ManySeq(slices.Values([]string{"a", "b", "c"}), emit.String))
	wantBytes(t, got, []byte("abc"))

	wantBytes(t, gen(t, emit.Repeat(3, emit.U8(7))), []byte{7, 7, 7})
	wantBytes(t, gen(t, emit.Repeat(0, emit.U8(7))), []byte{})
}

func TestSeparated(t *testing.T) {
	comma := emit.String(",")
	cases := []struct {
		name string
		list []emit.Serializer
		want string
	}{
		{"zero", nil, ""},
		{"one", []emit.Serializer{emit.String("a")}, "a"},
		{"three", []emit.Serializer{emit.String("a"), emit.String("b"), emit.String("c")}, "a,b,c"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := string(gen(t, emit.Separated(comma, c.list...))); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}

	got := gen(t, emit.SeparatedMany(comma, []int64{1, 22, 333}, emit.Int))
	if string(got) != "1,22,333" {
		t.Fatalf("got %q, want %q", got, "1,22,333")
	}
}

func TestCondWhenOr(t *testing.T) {
	wantBytes(t, gen(t, emit.All(emit.Cond(true, emit.U8(1)), emit.Cond(false, emit.U8(2)))), []byte{1})

	on := false
	s := emit.When(func() bool { return on }, emit.U8(9))
	wantBytes(t, gen(t, s), []byte{})
	on = true
	wantBytes(t, gen(t, s), []byte{9})

	wantBytes(t, gen(t, emit.Or(nil, emit.U8(3))), []byte{3})
	wantBytes(t, gen(t, emit.Or(emit.U8(4), emit.U8(3))), []byte{4})
}

func TestMapErr(t *testing.T) {
	s := emit.MapErr(emit.Fail(emit.InvalidInput("bad")), func(err error) error {
		return emit.Custom(1, "wrapped: "+err.Error())
	})
	_, err := emit.Gen(s)
	wantKind(t, err, emit.KindCustom)

	calls := 0
	s = emit.MapErr(emit.U32BE(1), func(err error) error {
		calls++
		return err
	})
	_, err = once(s, 2)
	wantKind(t, err, emit.KindInsufficientSpace)
	if calls != 0 {
		t.Fatalf("insufficient space was mapped %d times", calls)
	}

	// The driver still grows through MapErr.
	wantBytes(t, gen(t, s), []byte{0, 0, 0, 1})
}

func TestContramap(t *testing.T) {
	type point struct{ x, y int64 }
	f := emit.Contramap(func(p point) string {
		return strconv.FormatInt(p.x, 10) + ":" + strconv.FormatInt(p.y, 10)
	}, emit.String)
	if got := string(gen(t, emit.Many([]point{{1, 2}, {3, 4}}, f))); got != "1:23:4" {
		t.Fatalf("got %q, want %q", got, "1:23:4")
	}
}
