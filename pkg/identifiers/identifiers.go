package identifiers

import (
	"strings"
)

// Normalize uppercases a raw user-entered identifier and strips every
// character that is not an ASCII digit or X (the ISBN-10 checksum
// character). It is idempotent and side-effect free.
func Normalize(value string) string {
	var result strings.Builder
	for _, r := range strings.ToUpper(value) {
		if isDigit(r) || r == 'X' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// isDigit only admits ASCII digits. unicode.IsDigit would also accept
// other scripts' digits, which checksum arithmetic can't handle.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Accepted reports whether a raw value is a well-formed book identifier:
// after normalization it must be a checksum-valid ISBN-10 or ISBN-13.
// The empty string is not accepted; callers that treat an empty identifier
// as "not yet provided" should check for that before calling.
func Accepted(raw string) bool {
	normalized := Normalize(raw)
	if len(normalized) == 13 {
		return ValidateISBN13(normalized)
	}
	if len(normalized) == 10 {
		return ValidateISBN10(normalized)
	}
	return false
}

// ValidateISBN10 validates an ISBN-10 checksum.
// ISBN-10 uses modulo 11 with weights 10,9,8,7,6,5,4,3,2,1.
func ValidateISBN10(isbn string) bool {
	if len(isbn) != 10 {
		return false
	}

	var sum int
	for i, r := range isbn {
		var digit int
		if r == 'X' || r == 'x' {
			if i != 9 {
				return false // X only valid as last digit
			}
			digit = 10
		} else if isDigit(r) {
			digit = int(r - '0')
		} else {
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

// ValidateISBN13 validates an ISBN-13 checksum.
// ISBN-13 uses alternating weights of 1 and 3.
func ValidateISBN13(isbn string) bool {
	if len(isbn) != 13 {
		return false
	}

	var sum int
	for i, r := range isbn {
		if !isDigit(r) {
			return false
		}
		digit := int(r - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}
	return sum%10 == 0
}
