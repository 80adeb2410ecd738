// Package unsafehelpers centralizes every unavoidable use of the unsafe
// standard library package so the rest of honspace stays clean and easy
// to audit. Every helper documents its pre/post conditions.
//
// These helpers deliberately break the Go memory-safety model for the
// sake of zero-allocation conversions. Use only inside this module; they
// are not part of the public API and may change without notice. Misuse
// can lead to data races or GC corruption.
//
// All functions are go:linkname-free, cgo-free, and pure Go 1.24.
//
// © 2025 honspace authors. MIT License.
package unsafehelpers

import "unsafe"

// StringToBytes reinterprets string data as a byte slice. The slice must
// remain read-only; writing to it mutates immutable string storage.
func StringToBytes(s string) []byte {
	strHdr := (*[2]uintptr)(unsafe.Pointer(&s))
	return unsafe.Slice((*byte)(unsafe.Pointer(strHdr[0])), strHdr[1])
}

// Addr returns the numeric address of ptr, for use as a hash input only.
// The returned value must never be dereferenced or used to reconstruct a
// pointer; it is purely a fast, allocation-free stand-in for a pointer's
// identity hash.
func Addr(ptr unsafe.Pointer) uintptr {
	return uintptr(ptr)
}

// AlignUp rounds x up to the nearest multiple of align (which must be a
// power of two).
func AlignUp(x, align uintptr) uintptr {
	return (x + align - 1) &^ (align - 1)
}

// IsPowerOfTwo returns true if x is a power of two (exactly one bit set).
func IsPowerOfTwo(x uintptr) bool {
	return x != 0 && (x&(x-1)) == 0
}
