package helpers

// Ptr returns a pointer to val; handy for optional DTO fields in tests.
func Ptr[T any](val T) *T {
	return &val
}

// Value dereferences val, yielding the zero value for nil.
func Value[T any](val *T) T {
	var zero T
	if val == nil {
		return zero
	}
	return *val
}
