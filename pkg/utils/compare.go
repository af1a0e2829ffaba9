package utils

import "strings"

// CompareNullable compara dois ponteiros deixando os nulos sempre por último,
// independente da direção
func CompareNullable[T any](a, b *T, desc bool, compare func(a, b T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	result := compare(*a, *b)
	if desc {
		return -result
	}
	return result
}

// CompareFold compara strings sem diferenciar maiúsculas
func CompareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func CompareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func Ptr[T any](v T) *T { return &v }
