package slice

// Grow ensures the slice has the capacity to fit an additional n elements.
// When it has to reallocate it at least doubles the capacity, so repeated
// small grows while appending stay amortized linear.
func Grow[T any](slice []T, n int) []T {
	if cap(slice) >= len(slice)+n {
		return slice
	}
	c := 2 * cap(slice)
	if c < len(slice)+n {
		c = len(slice) + n
	}
	newSlice := make([]T, len(slice), c)
	copy(newSlice, slice)
	return newSlice
}

// Limit caps the capacity of slice at its length, so appending to it copies
// instead of overwriting whatever follows it in the backing array. Use it for
// subslices handed out from one large buffer.
func Limit[T any](slice []T) []T {
	l := len(slice)
	return slice[:l:l]
}
