package service

// Ptr returns a pointer whose value is v.
func Ptr[T any](v T) *T {
	return &v
}

// ValueOr returns *p, or fallback if p is nil. Optional configuration fields
// are pointers so that an explicit zero is distinguishable from an absent key.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
