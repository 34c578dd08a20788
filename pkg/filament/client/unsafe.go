package client

import "unsafe"

// stringToBytesUnsafe converts a string to a byte slice without allocation.
// WARNING: The returned slice references the original string's backing array.
// Do NOT modify the returned slice.
//
// Allocation behavior: 0 allocs/op
func stringToBytesUnsafe(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
