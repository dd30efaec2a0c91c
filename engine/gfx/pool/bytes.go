package pool

import "unsafe"

// Bytes reinterprets a slice of plain-old-data records as raw bytes for
// upload. T must not contain pointers.
func Bytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}

// SizeOf returns the byte size of one T record.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
