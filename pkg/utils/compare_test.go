package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareNullable(t *testing.T) {
	compareInt := func(a, b int) int { return a - b }

	tests := []struct {
		name string
		a, b *int
		desc bool
		want int
	}{
		{"crescente", Ptr(1), Ptr(2), false, -1},
		{"decrescente inverte", Ptr(1), Ptr(2), true, 1},
		{"nulo por último no crescente", nil, Ptr(2), false, 1},
		{"nulo por último no decrescente", nil, Ptr(2), true, 1},
		{"dois nulos", nil, nil, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareNullable(tt.a, tt.b, tt.desc, compareInt))
		})
	}
}

func TestCompareFold(t *testing.T) {
	assert.Equal(t, 0, CompareFold("Ana", "ana"))
	assert.Equal(t, -1, CompareFold("ana", "Bia"))
}
