package authenticating

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/trackrcommerce/trackr-api/pkg/apiErrors"
)

const (
	minPasswordLength = 8

	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

// ValidatePasswordStrength exige ao menos 8 caracteres com maiúscula, minúscula, número e símbolo
func ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return newAuthError(ErrWeakPassword, apiErrors.ErrInvalidRequest, 0, fmt.Sprintf("mínimo de %d caracteres", minPasswordLength))
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	missing := make([]string, 0, 4)
	if !hasUpper {
		missing = append(missing, "letra maiúscula")
	}
	if !hasLower {
		missing = append(missing, "letra minúscula")
	}
	if !hasNumber {
		missing = append(missing, "número")
	}
	if !hasSpecial {
		missing = append(missing, "caractere especial")
	}

	if len(missing) > 0 {
		return newAuthError(ErrWeakPassword, apiErrors.ErrInvalidRequest, 0, "falta "+strings.Join(missing, ", "))
	}

	return nil
}

// generatePassword sorteia uma senha que sempre passa em ValidatePasswordStrength
func generatePassword(length int) (string, error) {
	if length < minPasswordLength {
		length = minPasswordLength
	}

	charsets := []string{lowerChars, upperChars, numberChars, specialChars}
	all := strings.Join(charsets, "")

	password := make([]byte, length)
	for i := range password {
		charset := all
		if i < len(charsets) {
			charset = charsets[i]
		}

		n, err := randomInt(len(charset))
		if err != nil {
			return "", err
		}
		password[i] = charset[n]
	}

	for i := len(password) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("erro ao gerar número aleatório: %w", err)
	}
	return int(n.Int64()), nil
}
