// utils.go
//
// Copyright (C) 2026 Iron Fox Games
//
// This file contains general utility functions.

package gridpoker

// abs returns the absolute value of an int
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// permutations returns every permutation of the indices 0..n-1.
// Used to enumerate wild-slot modifier assignments; n is at most 5.
func permutations(n int) [][]int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	var result [][]int
	var generate func(k int)
	generate = func(k int) {
		if k == n {
			perm := make([]int, n)
			copy(perm, indices)
			result = append(result, perm)
			return
		}
		for i := k; i < n; i++ {
			indices[k], indices[i] = indices[i], indices[k]
			generate(k + 1)
			indices[k], indices[i] = indices[i], indices[k]
		}
	}
	generate(0)
	return result
}

// containsInt reports whether the slice contains the given value
func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
