// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package textutil provides the alphabet/frequency/lookup primitives
// shared by every codec: sorted alphabet extraction, normalised frequency
// tables, and both binary (sorted) and linear (order-meaningful) index
// lookup.
package textutil

import "sort"

// Alphabet returns the ascending-sorted, deduplicated set of code points
// appearing in seq.
func Alphabet(seq []rune) []rune {
	seen := make(map[rune]struct{}, len(seq))
	for _, cp := range seq {
		seen[cp] = struct{}{}
	}
	alphabet := make([]rune, 0, len(seen))
	for cp := range seen {
		alphabet = append(alphabet, cp)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })
	return alphabet
}

// FrequencyMap returns, for every code point in alphabet, its relative
// frequency (count / len(seq)) within seq.
func FrequencyMap(alphabet []rune, seq []rune) map[rune]float64 {
	counts := make(map[rune]int, len(alphabet))
	for _, cp := range seq {
		counts[cp]++
	}
	freq := make(map[rune]float64, len(alphabet))
	total := float64(len(seq))
	for _, cp := range alphabet {
		freq[cp] = float64(counts[cp]) / total
	}
	return freq
}

// IndexOfSorted returns the position of c in the ascending-sorted slice
// alphabet via binary search, or -1 if c is absent.
func IndexOfSorted(alphabet []rune, c rune) int {
	lo, hi := 0, len(alphabet)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case alphabet[mid] == c:
			return mid
		case alphabet[mid] < c:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}

// IndexOfOrdered returns the position of c in list via linear scan. Used
// where the list's order carries meaning beyond sort order, e.g. the MTF
// alphabet after symbols have been shifted to the front.
func IndexOfOrdered(list []rune, c rune) int {
	for i, v := range list {
		if v == c {
			return i
		}
	}
	return -1
}
