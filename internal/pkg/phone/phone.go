// Package phone holds formatting helpers for Korean mobile numbers.
package phone

import "strings"

// Mask hides everything but the last four digits, for logs.
func Mask(p string) string {
	if len(p) <= 4 {
		return strings.Repeat("*", len(p))
	}
	return strings.Repeat("*", len(p)-4) + p[len(p)-4:]
}

// E164 converts a domestic number (leading 0) to +82 form.
func E164(p string) string {
	if strings.HasPrefix(p, "+") {
		return p
	}
	return "+82" + strings.TrimPrefix(p, "0")
}
