package utils

import (
	"sort"
	"strings"
)

// DistinctSorted remove vazios e duplicados e ordena em ordem crescente
func DistinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}

	sort.Strings(out)
	return out
}

// Paginate devolve a fatia [(page-1)*limit, page*limit) da lista.
// O deslocamento só é calculado quando a página existe, então a conta não estoura int.
func Paginate[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 || len(items) == 0 {
		return make([]T, 0)
	}

	if page-1 > (len(items)-1)/limit {
		return make([]T, 0)
	}

	start := (page - 1) * limit
	end := len(items)
	if limit < end-start {
		end = start + limit
	}

	return items[start:end]
}
