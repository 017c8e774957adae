// Package tsp - lazy permutation enumeration for the exact solver.
//
// Permutations walks all orderings of a small index set in lexicographic
// order using the standard successor rule (find the rightmost ascent, swap it
// with the smallest larger suffix element, reverse the suffix). Only one
// permutation exists in memory at a time; the sequence is finite and
// single-pass; build a new iterator to start over.
//
// Complexity: amortized O(1) per Next, O(k) worst case; O(k) space.
package tsp

import (
	"iter"
	"slices"
)

// Permutations is a single-pass iterator over the permutations of a set of
// ints in ascending lexicographic order.
//
//	it := NewPermutations([]int{3, 1, 2})
//	for it.Next() {
//		use(it.Perm()) // [1 2 3], [1 3 2], [2 1 3], …
//	}
type Permutations struct {
	cur     []int
	started bool
	done    bool
}

// NewPermutations copies items, sorts the copy ascending and returns an
// iterator positioned before the first permutation. Duplicate values are
// enumerated as distinct multiset permutations (each ordering once).
//
// Complexity: O(k log k).
func NewPermutations(items []int) *Permutations {
	cur := slices.Clone(items)
	slices.Sort(cur)

	return &Permutations{cur: cur}
}

// Next advances to the next permutation and reports whether one exists.
// The first call yields the ascending order; an empty set yields exactly one
// (empty) permutation.
func (p *Permutations) Next() bool {
	if p.done {
		return false
	}
	if !p.started {
		p.started = true
		return true
	}
	if !nextPermutation(p.cur) {
		p.done = true
		return false
	}

	return true
}

// Perm returns the current permutation. The slice is owned by the iterator
// and is overwritten by the following Next; copy it to keep it.
func (p *Permutations) Perm() []int {
	return p.cur
}

// Lexicographic returns an iter.Seq over the permutations of items in
// lexicographic order. Each range loop starts a fresh enumeration; yielded
// slices are reused between iterations.
func Lexicographic(items []int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		it := NewPermutations(items)
		for it.Next() {
			if !yield(it.Perm()) {
				return
			}
		}
	}
}

// nextPermutation rearranges a into its lexicographic successor in place and
// reports false (leaving a untouched) when a is already the last permutation.
//
// Complexity: O(len(a)).
func nextPermutation(a []int) bool {
	var (
		n = len(a)
		i = n - 2
		j int
	)
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j = n - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	slices.Reverse(a[i+1:])

	return true
}
