package document

import (
	"bytes"
	"unsafe"
)

// unsafeBytesToString views b as a string without copying. Callers of
// BorrowText/BorrowSpan are documented to not retain the result past the
// next edit, which is what makes this safe: edits always allocate a fresh
// backing array rather than mutating in place.
func unsafeBytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

func indexOf(haystack []byte, needle string) int {
	return bytes.Index(haystack, []byte(needle))
}

func lastIndexOf(haystack []byte, needle string) int {
	return bytes.LastIndex(haystack, []byte(needle))
}
