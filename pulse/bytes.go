package pulse

import "unsafe"

// AsByteSlice views the memory of value as bytes, for uploading uniforms.
func AsByteSlice[T any](value *T) []byte {
	var zeroT T

	n := unsafe.Sizeof(zeroT)
	ptr := (*byte)(unsafe.Pointer(value))

	return unsafe.Slice(ptr, n)
}

// SliceAsBytes views the backing array of values as bytes. T must not
// contain any pointers.
func SliceAsBytes[T any](values []T) []byte {
	if len(values) == 0 {
		return nil
	}

	var zeroT T

	n := unsafe.Sizeof(zeroT) * uintptr(len(values))
	ptr := (*byte)(unsafe.Pointer(unsafe.SliceData(values)))

	return unsafe.Slice(ptr, n)
}
