package sports

import (
	"strings"
	"unicode"
)

// Normalize folds a team name to its alias-lookup key: lower case, no
// punctuation, trimmed. Idempotent, so the same function builds alias-table
// keys and resolves raw upstream names against them.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
