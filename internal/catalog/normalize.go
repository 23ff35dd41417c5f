package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics removes diacritical marks from a string (e.g., "Mắt" -> "Mat").
// The Vietnamese stroked d has no decomposition and is mapped explicitly.
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(result)
}

// FoldName normalizes a category name for lookup (lowercase, no diacritics,
// underscores for spaces and dashes).
func FoldName(name string) string {
	name = RemoveDiacritics(strings.TrimSpace(name))
	name = strings.ToLower(name)
	name = strings.NewReplacer("-", "_", " ", "_").Replace(name)
	return name
}
