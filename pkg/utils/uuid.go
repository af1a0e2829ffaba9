package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const couponCodeCharacters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCouponCode gera um código de cupom legível (sem 0/O e 1/I)
func GenerateCouponCode(length int) (string, error) {
	if length < 6 {
		length = 6
	}
	return gonanoid.Generate(couponCodeCharacters, length)
}
