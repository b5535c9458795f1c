package validation

import "strings"

// PasswordSymbols is the punctuation set a strong password must draw from.
const PasswordSymbols = ".!@#$%^&*()"

const minPasswordLength = 8

// IsStrongPassword reports whether p is at least 8 characters long and has an
// uppercase letter, a lowercase letter, a digit and a symbol from PasswordSymbols.
func IsStrongPassword(p string) bool {
	if len(p) < minPasswordLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
