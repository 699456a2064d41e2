// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package report_test

import (
	"math"
	"strings"
	"testing"

	"github.com/afrlfff/textcodec/report"
)

func TestEntropyUniform(t *testing.T) {
	seq := []rune("abcd")
	got := report.Entropy(seq)
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("Entropy(%q) = %v, want 2.0", string(seq), got)
	}
}

func TestEntropySingleSymbol(t *testing.T) {
	seq := []rune(strings.Repeat("a", 10))
	if got := report.Entropy(seq); got != 0 {
		t.Errorf("Entropy of single-symbol input = %v, want 0", got)
	}
}

func TestEntropyEmpty(t *testing.T) {
	if got := report.Entropy(nil); got != 0 {
		t.Errorf("Entropy(nil) = %v, want 0", got)
	}
}

func TestCompressionRatio(t *testing.T) {
	if got := report.CompressionRatio(100, 25); got != 4.0 {
		t.Errorf("CompressionRatio = %v, want 4.0", got)
	}
}

func TestEncodingRatio(t *testing.T) {
	original := []rune("aaaabbbc")
	encoded := []rune{'+', '4', 'a'}
	if got := report.EncodingRatio(original, encoded); got != float64(len(original))/float64(len(encoded)) {
		t.Errorf("EncodingRatio mismatch")
	}
}

func TestDecodingRatioPerfectRoundTrip(t *testing.T) {
	text := []rune("round trip")
	if got := report.DecodingRatio(text, text); got != 1.0 {
		t.Errorf("DecodingRatio perfect = %v, want 1.0", got)
	}
}

func TestDecodingRatioMismatch(t *testing.T) {
	original := []rune("aaaa")
	decoded := []rune("aabb")
	got := report.DecodingRatio(original, decoded)
	if got != 0.5 {
		t.Errorf("DecodingRatio = %v, want 0.5", got)
	}
}

func TestRepeatingCharSeqRatioAndMeanLength(t *testing.T) {
	// two runs: "aaa" (len 3) and "bb" (len 2), total len 7 ("aaaXbbY")
	seq := []rune("aaaXbbY")
	ratio := report.RepeatingCharSeqRatio(seq)
	want := float64((3-2)+(2-2)) / float64(len(seq))
	if ratio != want {
		t.Errorf("RepeatingCharSeqRatio = %v, want %v", ratio, want)
	}
	mean := report.MeanRepeatingCharSeqLength(seq)
	if mean != 2.5 {
		t.Errorf("MeanRepeatingCharSeqLength = %v, want 2.5", mean)
	}
}

func TestRepeatingCharSeqRatioNoRuns(t *testing.T) {
	seq := []rune("abcdef")
	if got := report.RepeatingCharSeqRatio(seq); got != 0 {
		t.Errorf("RepeatingCharSeqRatio(no runs) = %v, want 0", got)
	}
	if got := report.MeanRepeatingCharSeqLength(seq); got != 0 {
		t.Errorf("MeanRepeatingCharSeqLength(no runs) = %v, want 0", got)
	}
}
