package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GetKeys returns the keys of the input map.
// Order is not guaranteed.
func GetKeys[K comparable, V any](m map[K]V) (keys []K) {
	return maps.Keys(m)
}

// GetSortedKeys returns the keys of a map in increasing order.
func GetSortedKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {
	keys = GetKeys(m)
	SortSlice(keys)
	return
}

// SortSlice sorts a slice in place.
func SortSlice[T constraints.Ordered](s []T) {
	slices.Sort(s)
}

// ReverseSlice reverses a slice in place.
func ReverseSlice[V any](s []V) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
