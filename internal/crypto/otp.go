package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// CodeLength is the number of digits in a one-time verification code.
const CodeLength = 6

const digits = "0123456789"

var ErrInvalidCodeLength = errors.New("code length must be positive")

// GenerateCode returns a random numeric code of CodeLength digits.
func GenerateCode() (string, error) {
	return generateDigits(CodeLength)
}

func generateDigits(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidCodeLength
	}

	code := make([]byte, n)
	for i := range code {
		ch, err := randDigit()
		if err != nil {
			return "", err
		}
		code[i] = ch
	}
	return string(code), nil
}

func randDigit() (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
	if err != nil {
		return 0, err
	}
	return digits[n.Int64()], nil
}

// IsWellFormedCode reports whether code is exactly CodeLength ASCII digits.
func IsWellFormedCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
