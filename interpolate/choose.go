/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package interpolate

// chooseKoutOfN invokes f on every k-subset of {0, ..., n-1}, in lexicographic order.
// Returning false from f stops the enumeration.
func chooseKoutOfN(n, k int, f func([]int) bool) {
	choose(n, k, 0, nil, f)
}

func choose(n int, targetAmount int, i int, currentSubGroup []int, f func([]int) bool) bool {
	// Check if we have enough elements in our current subgroup
	if len(currentSubGroup) == targetAmount {
		return f(currentSubGroup)
	}
	// Return early if not enough remaining candidates to pick from
	itemsLeftToPick := n - i
	if targetAmount-len(currentSubGroup) > itemsLeftToPick {
		return true
	}
	// We either pick the current element
	if !choose(n, targetAmount, i+1, concatInts(currentSubGroup, i), f) {
		return false
	}
	// Or don't pick it
	return choose(n, targetAmount, i+1, currentSubGroup, f)
}

func concatInts(a []int, elements ...int) []int {
	var res []int
	res = append(res, a...)
	res = append(res, elements...)
	return res
}
