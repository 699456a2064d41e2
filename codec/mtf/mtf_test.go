// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package mtf_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/afrlfff/textcodec/codec/mtf"
)

func roundTrip(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	enc := filepath.Join(dir, "enc.bin")
	out := filepath.Join(dir, "out.txt")

	if err := os.WriteFile(in, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := mtf.Encode(in, enc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := mtf.Decode(enc, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(got)
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"banana",
		"mississippi",
		"hello, 世界! 🎉🎉🎉",
		strings.Repeat("abcdefghij", 50),
	}
	for _, tc := range cases {
		if got := roundTrip(t, tc); got != tc {
			t.Errorf("roundTrip(%q) = %q, want %q", tc, got, tc)
		}
	}
}

// TestLargeAlphabetUsesWiderIndex exercises the u16 index band by
// constructing an alphabet larger than 256 distinct code points.
func TestLargeAlphabetUsesWiderIndex(t *testing.T) {
	var b strings.Builder
	for r := rune(0x4E00); r < 0x4E00+300; r++ {
		b.WriteRune(r)
	}
	text := b.String()
	if got := roundTrip(t, text); got != text {
		t.Errorf("roundTrip large alphabet mismatch")
	}
}
