// Package wallet holds the address helpers used for assignment filtering.
package wallet

import (
	"regexp"
	"strings"
)

// 0x followed by 40-64 hex characters.
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40,64}$`)

// Normalize lower-cases and trims an address. Empty or absent → "".
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Equal compares two addresses ignoring case and surrounding whitespace.
// Two absent addresses are equal.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Truncate renders an address as first-6...last-4 for display.
// Strings shorter than 10 characters are returned unchanged.
func Truncate(address string) string {
	normalized := Normalize(address)
	if len(normalized) < 10 {
		return address
	}
	return normalized[:6] + "..." + normalized[len(normalized)-4:]
}

// IsValidAddress reports whether the string looks like a Sui address.
func IsValidAddress(address string) bool {
	return addressPattern.MatchString(strings.TrimSpace(address))
}
