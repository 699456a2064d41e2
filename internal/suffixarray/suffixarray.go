// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package suffixarray builds the rotation order the BWT codec needs via
// prefix doubling, an O(n log^2 n) construction that is subquadratic in
// the input length (required by §4.7, since the source's sort-of-all-
// rotations approach is O(N^2 log N)).
package suffixarray

import "sort"

// Rotations returns SA, the permutation of [0, n) such that seq rotated
// to start at SA[0], SA[1], ... is in ascending lexicographic order,
// where n = len(seq) and rotation i is seq[i:] + seq[:i].
//
// It works by doubling the comparison window over D = seq ++ seq: after
// ceil(log2(n)) doublings every rotation's rank is uniquely determined
// by its first n symbols of D, which is exactly the rotation's content.
// Ties between genuinely distinct rotations cannot survive past that
// point; ties that do survive correspond to identical rotations (seq is
// periodic), and since sort.Slice is unstable but equal-key elements
// are interchangeable for the forward transform, this is safe.
func Rotations(seq []rune) []int {
	n := len(seq)
	if n == 0 {
		return nil
	}
	d := make([]rune, 2*n)
	copy(d, seq)
	copy(d[n:], seq)

	rank := make([]int, 2*n)
	for i, cp := range d {
		rank[i] = int(cp)
	}

	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}

	tmp := make([]int, 2*n)
	for k := 1; k < n; k *= 2 {
		key := func(i int) (int, int) {
			return rank[i], rank[i+k]
		}
		sort.Slice(sa, func(i, j int) bool {
			a1, a2 := key(sa[i])
			b1, b2 := key(sa[j])
			if a1 != b1 {
				return a1 < b1
			}
			return a2 < b2
		})

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			a1, a2 := key(sa[i-1])
			b1, b2 := key(sa[i])
			if a1 != b1 || a2 != b2 {
				tmp[sa[i]]++
			}
		}
		for i := 0; i < n; i++ {
			rank[i] = tmp[i]
			rank[i+n] = tmp[i]
		}
		if rank[sa[n-1]] == n-1 {
			break
		}
	}
	return sa
}
