package sliceutil

// Contains reports whether v is present in s.
func Contains[T comparable](s []T, v T) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// Unique returns the elements of s with later duplicates removed,
// preserving the order of first occurrence.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	var res []T
	for _, e := range s {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		res = append(res, e)
	}
	return res
}

// Concat returns a new slice holding the elements of all given slices
// in order.
func Concat[T any](slices ...[]T) []T {
	var n int
	for _, s := range slices {
		n += len(s)
	}
	res := make([]T, 0, n)
	for _, s := range slices {
		res = append(res, s...)
	}
	return res
}
