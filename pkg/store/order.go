package store

import (
	"cmp"
	"slices"
)

// SortRows orders rows the way listings are returned: by key when the
// listing is filtered to one realm, by realm then key otherwise. Backends
// without ordered queries call it before returning.
func SortRows[T any](rows []T, filtered bool, realm, key func(T) string) {
	slices.SortStableFunc(rows, func(a, b T) int {
		if !filtered {
			if c := cmp.Compare(realm(a), realm(b)); c != 0 {
				return c
			}
		}
		return cmp.Compare(key(a), key(b))
	})
}
