package repository

import "strings"

// SanitizeSymbol lowercases a user-supplied ticker and maps any character
// outside [a-z0-9.-] to '_', so symbols can never escape into arbitrary
// file paths or store keys.
func SanitizeSymbol(symbol string) string {
	sym := strings.ToLower(strings.TrimSpace(symbol))
	var b strings.Builder
	b.Grow(len(sym))
	for _, r := range sym {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
