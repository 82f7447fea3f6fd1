package sliceutil

// Transform builds a slice by applying the provided function
// to all elements in the given slice.
func Transform[From, To any](from []From, f func(From) To) []To {
	if len(from) == 0 {
		return nil
	}
	to := make([]To, len(from))
	for i, v := range from {
		to[i] = f(v)
	}
	return to
}

// RemoveFunc removes items matching the given function
// from the provided slice.
//
// The original slice must not be used after this.
func RemoveFunc[T any](items []T, skip func(T) bool) []T {
	newItems := items[:0]
	for _, item := range items {
		if !skip(item) {
			newItems = append(newItems, item)
		}
	}
	return newItems
}
