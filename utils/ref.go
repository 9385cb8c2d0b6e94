package utils

// Ref is a handle to a single heap-allocated value. Copies of a Ref share the value,
// which lives as long as the longest-lived copy.
type Ref[T any] struct {
	ptr *T
}

func NewRef[T any](v T) Ref[T] {
	return Ref[T]{ptr: &v}
}

// Get dereferences r. It panics on the zero Ref, check IsNil first when r may be unset.
func (r Ref[T]) Get() T {
	return *r.ptr
}

// Ptr exposes the shared value. Writes through it are visible to every copy of r.
func (r Ref[T]) Ptr() *T {
	return r.ptr
}

func (r Ref[T]) IsNil() bool {
	return r.ptr == nil
}
