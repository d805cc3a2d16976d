// SPDX-License-Identifier: MIT

/*
Package bitint provides the power-of-two helpers used to size the sample
buffer and to derive the order of the radix-2 transform that runs over it.

All functions are O(1), allocation free and safe to call from the polling
loop.

Usage:

	// Validate the sample buffer capacity before allocating it.
	if !bitint.IsPowerOfTwo(size) { ... }

	// Order of the transform over a 2048 sample buffer.
	order := bitint.Log2(2048) // 11
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the smallest power of 2 >= size.
// Sizes <= 0 return 1. Subtracting one before measuring the bit length keeps
// exact powers of two unchanged (8 -> 8, 9 -> 16).
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len(uint(size-1))
}

// IsPowerOfTwo reports whether n is a positive power of two.
// A power of two has a single bit set, so clearing the lowest set bit
// with n&(n-1) leaves zero.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Log2 returns the base-2 logarithm of n rounded down, or -1 when n <= 0.
// For a power-of-two buffer this is the number of butterfly stages.
func Log2(n int) int {
	if n <= 0 {
		return -1
	}
	return bits.Len(uint(n)) - 1
}
