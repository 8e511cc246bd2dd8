package inplace

import (
	"cmp"
	"slices"
)

// Equal reports whether a and b hold equal elements in the same order.
// Capacities are not compared.
func Equal[T comparable](a, b *Vector[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is like Equal with a custom element comparison.
func EqualFunc[T any](a, b *Vector[T], eq func(T, T) bool) bool {
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}

// Compare compares a and b lexicographically.
func Compare[T cmp.Ordered](a, b *Vector[T]) int {
	return slices.Compare(a.Slice(), b.Slice())
}

// CompareFunc is like Compare with a custom element comparison.
func CompareFunc[T any](a, b *Vector[T], compare func(T, T) int) int {
	return slices.CompareFunc(a.Slice(), b.Slice(), compare)
}
