package utils

// HeapPtr copies v to the heap and returns a pointer to the copy.
func HeapPtr[T any](v T) *T {
	return &v
}
