package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes characters and strips combining marks, so
// accented letters reduce to their ASCII base form.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, folds diacritics, and collapses runs of
// whitespace and punctuation separators into single spaces. The result is the
// canonical form used for similarity comparison.
func Normalize(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	prevSpace := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			prevSpace = false
		default:
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// ToASCII reduces text to printable ASCII after diacritic folding. Runes with
// no ASCII form are dropped. Used when a preset selects the ascii charset.
func ToASCII(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		folded = text
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize splits normalized text into its space-separated tokens.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// TokenOverlap computes the Jaccard overlap between the token sets of two
// strings. Returns 0 when either side has no tokens.
func TokenOverlap(a, b string) float64 {
	left := Tokenize(a)
	right := Tokenize(b)
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(left))
	for _, token := range left {
		seen[token] = struct{}{}
	}
	union := len(seen)
	shared := 0
	for _, token := range right {
		if _, ok := seen[token]; ok {
			shared++
			delete(seen, token)
			continue
		}
		union++
	}
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}
