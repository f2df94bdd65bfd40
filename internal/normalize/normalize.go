// Package normalize folds free text into comparable forms: lowercase,
// accent-free search keys and URL-safe slugs.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches runs of whitespace.
	whitespace = regexp.MustCompile(`\s+`)
)

// Letters NFKD leaves intact because they carry no combining mark.
//
//nolint:gochecknoglobals // Static lookup table for folding
var strokeLetters = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ß", "ss",
)

// Fold lowercases s, strips diacritics and collapses whitespace.
// "  Człowiek z Żelaza " -> "czlowiek z zelaza".
func Fold(s string) string {
	s = strokeLetters.Replace(s)

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	folded = strings.ToLower(folded)
	folded = whitespace.ReplaceAllString(folded, " ")
	return strings.TrimSpace(folded)
}

// Slugify converts a string to a URL-safe slug.
// "Premiere Night" -> "premiere-night".
// "Przegląd Kina Polskiego 2024" -> "przeglad-kina-polskiego-2024".
func Slugify(s string) string {
	s = Fold(s)

	// Remove whatever is still outside ASCII.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
