// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package ac implements the fixed-block arithmetic coding codec of
// §4.8: input is split into blocks of up to 14 code points, each coded
// against a per-block frequency table quantised to 2 decimal places.
// Interval refinement is done with math/big.Rat rather than the
// source's long double, which sidesteps the precision defect called
// out in the source (narrow floating point loses the low bits of the
// final symbols in a block); quantised frequencies are exact multiples
// of 1/100, so the whole computation up to the final 64-bit rounding
// can be carried out exactly.
package ac

import (
	"bufio"
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/afrlfff/textcodec/codecerr"
	"github.com/afrlfff/textcodec/internal/codepoint"
	"github.com/afrlfff/textcodec/internal/ioutil"
	"github.com/afrlfff/textcodec/internal/textutil"
)

const blockSize = 14

var tenTo17 = new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(17), nil))

// block holds the per-block encode/decode state: the frequency-sorted
// alphabet, its quantised percentages, and the cumulative segment
// boundaries derived from them.
type block struct {
	alphabet []rune
	percents []uint8
	segments []*big.Rat // len(alphabet)+1, segments[0]=0, segments[last]=1
}

// buildBlock computes the frequency-sorted alphabet and quantised
// segments for one block of input symbols.
func buildBlock(symbols []rune) block {
	sortedAlphabet := textutil.Alphabet(symbols)
	freq := textutil.FrequencyMap(sortedAlphabet, symbols)

	order := make([]rune, len(sortedAlphabet))
	copy(order, sortedAlphabet)
	sort.SliceStable(order, func(i, j int) bool { return freq[order[i]] < freq[order[j]] })

	percents := make([]uint8, len(order))
	for i, c := range order {
		percents[i] = uint8(freq[c] * 100) // truncation toward zero, matching std::trunc
	}

	segments := make([]*big.Rat, len(order)+1)
	segments[0] = big.NewRat(0, 1)
	for i := 1; i < len(order); i++ {
		segments[i] = new(big.Rat).Add(segments[i-1], big.NewRat(int64(percents[i-1]), 100))
	}
	segments[len(order)] = big.NewRat(1, 1)

	return block{alphabet: order, percents: percents, segments: segments}
}

func (b block) indexOf(c rune) int { return textutil.IndexOfOrdered(b.alphabet, c) }

// Encode reads UTF-8 text from inputPath and writes the AC container to
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

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	w := out.Writer(ctx)

	if err := ioutil.AppendU64(w, uint64(len(seq))); err != nil {
		return err
	}

	for start := 0; start < len(seq); start += blockSize {
		end := start + blockSize
		if end > len(seq) {
			end = len(seq)
		}
		symbols := seq[start:end]
		b := buildBlock(symbols)

		lo, hi := big.NewRat(0, 1), big.NewRat(1, 1)
		for _, c := range symbols {
			j := b.indexOf(c)
			d := new(big.Rat).Sub(hi, lo)
			newHi := new(big.Rat).Add(lo, new(big.Rat).Mul(b.segments[j+1], d))
			newLo := new(big.Rat).Add(lo, new(big.Rat).Mul(b.segments[j], d))
			lo, hi = newLo, newHi
		}

		mid := new(big.Rat).Mul(new(big.Rat).Add(lo, hi), big.NewRat(1, 2))
		scaled := new(big.Rat).Mul(mid, tenTo17)
		resultValue := new(big.Int).Quo(scaled.Num(), scaled.Denom()).Uint64()

		if len(b.alphabet) > 255 {
			return fmt.Errorf("%w: ac block alphabet exceeds 255 symbols", codecerr.ErrInvalidContainer)
		}
		if err := ioutil.AppendU8(w, uint8(len(b.alphabet))); err != nil {
			return err
		}
		if err := codepoint.EncodeSequence(w, b.alphabet); err != nil {
			return err
		}
		for _, p := range b.percents {
			if err := ioutil.AppendU8(w, p); err != nil {
				return err
			}
		}
		if err := ioutil.AppendU64(w, resultValue); err != nil {
			return err
		}
	}
	return out.Close(ctx)
}

// Decode reads an AC container from inputPath and writes the recovered
// UTF-8 text to outputPath.
func Decode(inputPath, outputPath string) error {
	ctx := context.Background()
	in, err := ioutil.OpenInput(ctx, inputPath)
	if err != nil {
		return err
	}
	defer in.Close(ctx)
	r := bufio.NewReader(in.Reader(ctx))

	strLength, err := ioutil.ReadU64(r)
	if err != nil {
		return err
	}

	out, err := ioutil.CreateOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	w := out.Writer(ctx)

	var decoded uint64
	for decoded < strLength {
		want := uint64(blockSize)
		if remaining := strLength - decoded; remaining < blockSize {
			want = remaining
		}

		alphabetLength, err := ioutil.ReadU8(r)
		if err != nil {
			return err
		}
		alphabet, err := codepoint.DecodeSequence(r, int(alphabetLength))
		if err != nil {
			return err
		}
		percents := make([]uint8, alphabetLength)
		for i := range percents {
			p, err := ioutil.ReadU8(r)
			if err != nil {
				return err
			}
			percents[i] = p
		}
		resultValue, err := ioutil.ReadU64(r)
		if err != nil {
			return err
		}

		segments := make([]*big.Rat, len(alphabet)+1)
		segments[0] = big.NewRat(0, 1)
		for i := 1; i < len(alphabet); i++ {
			segments[i] = new(big.Rat).Add(segments[i-1], big.NewRat(int64(percents[i-1]), 100))
		}
		segments[len(alphabet)] = big.NewRat(1, 1)

		v := new(big.Rat).Quo(new(big.Rat).SetInt(new(big.Int).SetUint64(resultValue)), tenTo17)

		lo, hi := big.NewRat(0, 1), big.NewRat(1, 1)
		symbols := make([]rune, 0, want)
		for i := uint64(0); i < want; i++ {
			d := new(big.Rat).Sub(hi, lo)
			j := -1
			for k := 0; k < len(alphabet); k++ {
				segLo := new(big.Rat).Add(lo, new(big.Rat).Mul(segments[k], d))
				segHi := new(big.Rat).Add(lo, new(big.Rat).Mul(segments[k+1], d))
				if v.Cmp(segLo) >= 0 && v.Cmp(segHi) < 0 {
					j = k
					break
				}
			}
			if j == -1 {
				return fmt.Errorf("%w: decoded value falls outside every segment of the reconstructed interval", codecerr.ErrPrecisionFailure)
			}
			symbols = append(symbols, alphabet[j])

			newHi := new(big.Rat).Add(lo, new(big.Rat).Mul(segments[j+1], d))
			newLo := new(big.Rat).Add(lo, new(big.Rat).Mul(segments[j], d))
			lo, hi = newLo, newHi
		}

		if err := codepoint.EncodeSequence(w, symbols); err != nil {
			return err
		}
		decoded += want
	}
	return out.Close(ctx)
}
