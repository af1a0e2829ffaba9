package utils

import "github.com/shopspring/decimal"

// RoundWithTwoDecimalPlace arredonda valores monetários para 2 casas (meio para longe do zero).
// Usa a representação decimal mais curta do float, então 50.005 vira 50.01.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	rounded, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return rounded
}

// SafeDivide retorna 0 quando o divisor é zero
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
