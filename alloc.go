package imdraw

import "slices"

// extend grows s by n elements and returns the grown slice together with
// the tail holding the new elements. Growth is amortized; when spare
// capacity exists the tail is resliced in place and keeps whatever bytes
// the memory held before. Callers must fully populate the tail before
// reading it.
func extend[T any](s []T, n int) ([]T, []T) {
	s = slices.Grow(s, n)
	total := len(s) + n
	s = s[:total]
	return s, s[total-n:]
}

// extendFill grows s by n elements, setting every new element to fill.
func extendFill[T any](s []T, n int, fill T) ([]T, []T) {
	s, tail := extend(s, n)
	for i := range tail {
		tail[i] = fill
	}
	return s, tail
}
