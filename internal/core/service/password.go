package service

import (
	"strings"
	"unicode"
)

// specialChars is the single special-character set used everywhere the
// password policy is checked. The two historical call sites disagreed on this
// set; this is now the only definition.
const specialChars = "!@#$%^&*()_+-=[]{}|;:'\",.<>/?`~"

// ValidPassword reports whether pw satisfies the strength policy: at least 8
// characters with at least one uppercase letter, one lowercase letter, one
// digit, and one character from specialChars.
func ValidPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	return upper && lower && digit && special
}
