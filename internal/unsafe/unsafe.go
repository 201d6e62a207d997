// SPDX-License-Identifier: Unlicense OR MIT

package unsafe

import (
	"unsafe"
)

// BytesView returns a byte slice view of a slice.
func BytesView[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*sz)
}

// CString returns a pointer to a NUL-terminated copy of s, suitable
// for passing to native functions.
func CString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}
