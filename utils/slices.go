package utils

// FindIndex returns the index of the first occurrence of item, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// SumBy adds up f over every element.
func SumBy[T any, N int | int64 | float64](slice []T, f func(T) N) N {
	var total N
	for _, v := range slice {
		total += f(v)
	}
	return total
}
