package cache

// Value caches a single computed value together with the token under which
// it was computed. The zero Value is ready to use and always recomputes on
// first access.
type Value[T any] struct {
	value T
	token Token
}

// Get returns the cached value if it was computed under current, and
// otherwise recomputes it, stores it with current, and returns it.
func (v *Value[T]) Get(current Token, compute func() T) T {
	if v.token == current {
		return v.value
	}
	v.value = compute()
	v.token = current
	return v.value
}

// Invalidate forces the next Get to recompute regardless of token.
func (v *Value[T]) Invalidate() {
	var zero T
	v.value = zero
	v.token = 0
}

// Valid reports whether the cached value was computed under current.
func (v *Value[T]) Valid(current Token) bool {
	return v.token == current
}
