package form

import (
	"strings"
	"unicode"
)

// TitleCase normalizes a name: each whitespace-delimited word gets its
// first rune uppercased and the remainder lowercased, and runs of
// whitespace collapse to a single space.
//
// "  john   DOE " → "John Doe". First-rune handling (not first byte)
// keeps non-ASCII names like "éloise" correct.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
