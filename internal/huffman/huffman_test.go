// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package huffman_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/afrlfff/textcodec/internal/huffman"
)

func sortedByFreq(seq []rune) []huffman.Symbol {
	counts := make(map[rune]int)
	var order []rune
	for _, c := range seq {
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}
	syms := make([]huffman.Symbol, len(order))
	for i, c := range order {
		syms[i] = huffman.Symbol{CP: c, Freq: float64(counts[c]) / float64(len(seq))}
	}
	sort.SliceStable(syms, func(i, j int) bool { return syms[i].Freq < syms[j].Freq })
	return syms
}

func TestSingleSymbolGetsCodeZero(t *testing.T) {
	root := huffman.BuildTree([]huffman.Symbol{{CP: 'A', Freq: 1.0}})
	codes := huffman.CodeMap(root, 1)
	if codes['A'] != "0" {
		t.Errorf("got %q, want %q", codes['A'], "0")
	}
}

func TestCodesArePrefixFree(t *testing.T) {
	syms := sortedByFreq([]rune("mississippi river"))
	root := huffman.BuildTree(syms)
	codes := huffman.CodeMap(root, len(syms))

	for a, ca := range codes {
		for b, cb := range codes {
			if a == b {
				continue
			}
			if strings.HasPrefix(ca, cb) || strings.HasPrefix(cb, ca) {
				t.Errorf("code %q for %q is a prefix of code %q for %q", ca, string(a), cb, string(b))
			}
		}
	}
}

func TestEncodedBitCountMatchesWeightedLength(t *testing.T) {
	text := []rune("abracadabra")
	syms := sortedByFreq(text)
	root := huffman.BuildTree(syms)
	codes := huffman.CodeMap(root, len(syms))

	var bits int
	for _, c := range text {
		bits += len(codes[c])
	}

	var want float64
	n := float64(len(text))
	for _, s := range syms {
		want += s.Freq * n * float64(len(codes[s.CP]))
	}
	if float64(bits) != want {
		t.Errorf("got %v bits, want %v", bits, want)
	}
}
