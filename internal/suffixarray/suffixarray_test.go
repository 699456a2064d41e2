// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package suffixarray_test

import (
	"strings"
	"testing"

	"github.com/afrlfff/textcodec/internal/suffixarray"
)

func rotation(seq []rune, i int) string {
	n := len(seq)
	r := make([]rune, n)
	copy(r, seq[i:])
	copy(r[n-i:], seq[:i])
	return string(r)
}

func TestRotationsSortedAscending(t *testing.T) {
	seq := []rune("banana")
	sa := suffixarray.Rotations(seq)
	if len(sa) != len(seq) {
		t.Fatalf("got %d entries, want %d", len(sa), len(seq))
	}
	for i := 1; i < len(sa); i++ {
		if rotation(seq, sa[i-1]) > rotation(seq, sa[i]) {
			t.Errorf("rotations not sorted at %d: %q > %q", i, rotation(seq, sa[i-1]), rotation(seq, sa[i]))
		}
	}
}

func TestBananaMatchesWorkedExample(t *testing.T) {
	seq := []rune("banana")
	sa := suffixarray.Rotations(seq)
	var lastColumn strings.Builder
	originalIndex := -1
	for i, start := range sa {
		lastColumn.WriteRune(seq[(start-1+len(seq))%len(seq)])
		if start == 0 {
			originalIndex = i
		}
	}
	if got, want := lastColumn.String(), "nnbaaa"; got != want {
		t.Errorf("lastColumn = %q, want %q", got, want)
	}
	if originalIndex != 3 {
		t.Errorf("originalIndex = %d, want 3", originalIndex)
	}
}

func TestSingleCharacter(t *testing.T) {
	sa := suffixarray.Rotations([]rune("a"))
	if len(sa) != 1 || sa[0] != 0 {
		t.Errorf("got %v, want [0]", sa)
	}
}

func TestEmpty(t *testing.T) {
	if sa := suffixarray.Rotations(nil); sa != nil {
		t.Errorf("got %v, want nil", sa)
	}
}

func TestAllIdenticalCharacters(t *testing.T) {
	seq := []rune(strings.Repeat("z", 8))
	sa := suffixarray.Rotations(seq)
	if len(sa) != len(seq) {
		t.Fatalf("got %d entries, want %d", len(sa), len(seq))
	}
	for i := 1; i < len(sa); i++ {
		if rotation(seq, sa[i-1]) != rotation(seq, sa[i]) {
			t.Errorf("expected all rotations equal for uniform input")
		}
	}
}
