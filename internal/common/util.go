package common

// ToSet converts a slice to a set-like map.
func ToSet[T comparable](a []T) map[T]struct{} {
	result := make(map[T]struct{}, len(a))
	for _, v := range a {
		result[v] = struct{}{}
	}
	return result
}
