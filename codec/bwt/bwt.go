// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bwt implements the Burrows-Wheeler transform codec of §4.7.
// The forward transform derives the rotation order from a subquadratic
// suffix array (internal/suffixarray), rather than the source's
// O(N^2 log N) sort of materialised rotation strings. The inverse uses
// O(N) LF-mapping instead of the source's column-by-column resort.
package bwt

import (
	"bufio"
	"context"
	"fmt"
	"sort"

	"github.com/afrlfff/textcodec/codecerr"
	"github.com/afrlfff/textcodec/internal/codepoint"
	"github.com/afrlfff/textcodec/internal/ioutil"
	"github.com/afrlfff/textcodec/internal/suffixarray"
)

// Encode reads UTF-8 text from inputPath and writes the BWT container to
// outputPath.
func Encode(inputPath, outputPath string) error {
	ctx := context.Background()
	in, err := ioutil.OpenInput(ctx, inputPath)
	if err != nil {
		return err
	}
	seq, err := ioutil.ReadAllCodePoints(in.Reader(ctx))
	if cerr := in.Close(ctx); cerr != nil && err == nil {
		err = fmt.Errorf("%w: %v", codecerr.ErrIO, cerr)
	}
	if err != nil {
		return err
	}

	n := len(seq)
	var lastColumn []rune
	var originalIndex uint64
	if n > 0 {
		sa := suffixarray.Rotations(seq)
		lastColumn = make([]rune, n)
		for i, start := range sa {
			lastColumn[i] = seq[(start-1+n)%n]
			if start == 0 {
				originalIndex = uint64(i)
			}
		}
	}

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	w := out.Writer(ctx)

	if err := ioutil.AppendU64(w, uint64(n)); err != nil {
		return err
	}
	if err := codepoint.EncodeSequence(w, lastColumn); err != nil {
		return err
	}
	if err := ioutil.AppendU64(w, originalIndex); err != nil {
		return err
	}
	return out.Close(ctx)
}

// Decode reads a BWT container from inputPath and writes the recovered
// UTF-8 text to outputPath via the O(N) LF-mapping inverse.
func Decode(inputPath, outputPath string) error {
	ctx := context.Background()
	in, err := ioutil.OpenInput(ctx, inputPath)
	if err != nil {
		return err
	}
	defer in.Close(ctx)
	r := bufio.NewReader(in.Reader(ctx))

	n, err := ioutil.ReadU64(r)
	if err != nil {
		return err
	}
	lastColumn, err := codepoint.DecodeSequence(r, int(n))
	if err != nil {
		return err
	}
	originalIndex, err := ioutil.ReadU64(r)
	if err != nil {
		return err
	}
	if n > 0 && originalIndex >= n {
		return fmt.Errorf("%w: bwt originalIndex %d out of range for length %d", codecerr.ErrInvalidContainer, originalIndex, n)
	}

	decoded := invert(lastColumn, int(originalIndex))

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	w := out.Writer(ctx)
	if err := codepoint.EncodeSequence(w, decoded); err != nil {
		return err
	}
	return out.Close(ctx)
}

// invert recovers the original sequence from its BWT last column L and
// originalIndex r, via LF-mapping: LF[i] = C[L[i]] + rank_in_L(L[i], i),
// where C[c] counts symbols strictly less than c in L. Walking
// cursor = r, out[N-1-k] = L[cursor], cursor = LF[cursor] for N steps
// reproduces the input.
func invert(lastColumn []rune, originalIndex int) []rune {
	n := len(lastColumn)
	if n == 0 {
		return nil
	}

	// C[c] = number of symbols strictly less than c in L, derived from
	// the counts of each distinct symbol in ascending order.
	counts := make(map[rune]int, n)
	for _, c := range lastColumn {
		counts[c]++
	}
	distinct := make([]rune, 0, len(counts))
	for c := range counts {
		distinct = append(distinct, c)
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })
	base := make(map[rune]int, len(distinct))
	running := 0
	for _, c := range distinct {
		base[c] = running
		running += counts[c]
	}

	// rankInL[i] = number of occurrences of L[i] among L[0:i].
	seen := make(map[rune]int, len(counts))
	lf := make([]int, n)
	for i, c := range lastColumn {
		lf[i] = base[c] + seen[c]
		seen[c]++
	}

	out := make([]rune, n)
	cursor := originalIndex
	for k := 0; k < n; k++ {
		out[n-1-k] = lastColumn[cursor]
		cursor = lf[cursor]
	}
	return out
}
