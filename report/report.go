// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package report computes the descriptive statistics the source tool
// prints alongside every codec run: Shannon entropy of the input
// alphabet, compression/decoding ratios between file pairs, and the
// repeating-character-sequence statistics used to characterise how
// RLE-friendly a given input is. Grounded on Entropy.h,
// CompressionRatio.h, EncodingDecodingRatios.h, RepeatingCharSeqRatio.h
// and MeanRepeatingCharSeqLength.h.
package report

import "math"

// Entropy returns the Shannon entropy, in bits per code point, of seq's
// code-point distribution.
func Entropy(seq []rune) float64 {
	if len(seq) == 0 {
		return 0
	}
	counts := make(map[rune]int, len(seq))
	for _, cp := range seq {
		counts[cp]++
	}
	total := float64(len(seq))
	var entropy float64
	for _, n := range counts {
		p := float64(n) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// CompressionRatio returns originalSize/compressedSize, the ratio the
// source reports from file sizes directly.
func CompressionRatio(originalSize, compressedSize int64) float64 {
	if compressedSize == 0 {
		return 0
	}
	return float64(originalSize) / float64(compressedSize)
}

// EncodingRatio returns len(original)/len(encoded) in code points,
// mirroring the in-memory overload of EncodingDecodingRatios.h.
func EncodingRatio(original, encoded []rune) float64 {
	if len(encoded) == 0 {
		return 0
	}
	return float64(len(original)) / float64(len(encoded))
}

// DecodingRatio returns the length of the leading prefix on which
// original and decoded agree, as a fraction of the longer of the two
// sequences. A perfect round trip of equal-length sequences scores 1.0.
func DecodingRatio(original, decoded []rune) float64 {
	minLen, maxLen := len(original), len(decoded)
	if maxLen < minLen {
		minLen, maxLen = maxLen, minLen
	}
	if maxLen == 0 {
		return 0
	}
	var agree int
	for agree < minLen && original[agree] == decoded[agree] {
		agree++
	}
	return float64(agree) / float64(maxLen)
}

// repeatingRuns returns, for seq, the total count of repeating
// sequences (runs of length >= 2) and the total number of code points
// those runs cover.
func repeatingRuns(seq []rune) (seqCount, charCount int) {
	i := 0
	for i < len(seq)-1 {
		if seq[i] == seq[i+1] {
			seqCount++
			charCount++ // the first character of the run
			for i < len(seq)-1 && seq[i] == seq[i+1] {
				charCount++
				i++
			}
		}
		i++
	}
	return seqCount, charCount
}

// RepeatingCharSeqRatio returns the fraction of seq's code points that
// sit inside a repeating run (length >= 2), each run's length counted
// minus 2 — the portion of the run beyond what identifies it as a run
// at all.
func RepeatingCharSeqRatio(seq []rune) float64 {
	if len(seq) == 0 {
		return 0
	}
	seqCount, charCount := repeatingRuns(seq)
	return float64(charCount-2*seqCount) / float64(len(seq))
}

// MeanRepeatingCharSeqLength returns the mean length, in code points,
// of seq's repeating runs (runs of length >= 2).
func MeanRepeatingCharSeqLength(seq []rune) float64 {
	seqCount, charCount := repeatingRuns(seq)
	if seqCount == 0 {
		return 0
	}
	return float64(charCount) / float64(seqCount)
}
