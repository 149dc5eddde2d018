// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit_test

import (
	"testing"

	"code.hybscloud.com/emit"
)

func TestText(t *testing.T) {
	cases := []struct {
		name string
		s    emit.Serializer
		want string
	}{
		{"string", emit.String("héllo"), "héllo"},
		{"hex", emit.Hex(0xBEEF), "BEEF"},
		{"hex zero", emit.Hex(0), "0"},
		{"hex lower", emit.HexLower(0xBEEF), "beef"},
		{"int", emit.Int(-1234), "-1234"},
		{"uint", emit.Uint(18446744073709551615), "18446744073709551615"},
		{"printf", emit.Printf("%s=%d", "k", 7), "k=7"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := string(gen(t, c.s)); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestStringNoValidation(t *testing.T) {
	raw := string([]byte{0xFF, 0xFE, 'a'})
	wantBytes(t, gen(t, emit.String(raw)), []byte{0xFF, 0xFE, 'a'})
}
