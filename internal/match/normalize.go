package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphaNum = regexp.MustCompile(`[^a-z0-9]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// BrandProfile captures the normalization output for a brand name.
type BrandProfile struct {
	Original   string
	Normalized string
	Compact    string
	Tokens     []string
}

// NormalizeBrand normalizes and tokenizes the supplied brand name.
func NormalizeBrand(input string) BrandProfile {
	normalized := Normalize(input)
	compact := nonAlphaNum.ReplaceAllString(normalized, "")
	return BrandProfile{
		Original:   input,
		Normalized: normalized,
		Compact:    compact,
		Tokens:     Tokens(normalized),
	}
}

// Normalize lowercases, strips diacritics, collapses whitespace and trims.
func Normalize(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return ""
	}
	lower = StripDiacritics(lower)
	lower = whitespace.ReplaceAllString(lower, " ")
	return strings.TrimSpace(lower)
}

// Compact returns the normalized form restricted to [a-z0-9].
func Compact(input string) string {
	return nonAlphaNum.ReplaceAllString(Normalize(input), "")
}

// StripDiacritics removes combining marks ("ação" -> "acao"). Input that fails to
// transform is returned unchanged.
func StripDiacritics(input string) string {
	// transform.Chain keeps state and must not be shared between goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// Tokens splits a string into normalized words.
func Tokens(input string) []string {
	normalized := Normalize(input)
	parts := strings.FieldsFunc(normalized, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	var out []string
	for _, part := range parts {
		out = appendUnique(out, strings.TrimSpace(part))
	}
	return out
}

// ContainsDigit reports whether the string carries any decimal digit.
func ContainsDigit(input string) bool {
	return strings.IndexFunc(input, unicode.IsDigit) >= 0
}

func appendUnique(s []string, v string) []string {
	if v == "" {
		return s
	}
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}
