package internal

import "strings"

// FormatAmount converts a decimal amount ("12.34") to integer minor units ("1234").
// The value is rounded half up to two fractional digits; "," thousands separators
// are ignored. Only unsigned decimals are accepted.
func FormatAmount(amount string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
	if s == "" {
		return "", &ValidationError{Field: fieldAmount, Reason: "empty"}
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" || !isDigits(intPart) || !isDigits(fracPart) {
		return "", &ValidationError{Field: fieldAmount, Reason: "not a number: " + amount}
	}

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}

	roundUp := len(fracPart) > 2 && fracPart[2] >= '5'
	for len(fracPart) < 2 {
		fracPart += "0"
	}
	digits := []byte(intPart + fracPart[:2])
	if roundUp {
		digits = increment(digits)
	}
	return string(digits), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// increment adds one to a decimal digit string.
func increment(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}
	return append([]byte{'1'}, digits...)
}
