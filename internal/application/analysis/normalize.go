package analysis

import "strings"

// Normalize strips leading and trailing whitespace and nothing else.
// The result may be empty; callers treat that as missing content.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}
