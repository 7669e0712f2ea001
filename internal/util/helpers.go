package util

import "cmp"

// Ptr returns a pointer to the value.
func Ptr[T any](v T) *T {
	return &v
}

// Clamp constrains a value to a range. If max < min, min wins.
func Clamp[T cmp.Ordered](value, min, max T) T {
	if value > max {
		value = max
	}
	if value < min {
		return min
	}
	return value
}
