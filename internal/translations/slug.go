package translations

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

	// letters NFD cannot decompose into ASCII
	transliterations = strings.NewReplacer(
		"ß", "ss", "ẞ", "ss",
		"æ", "ae", "Æ", "ae",
		"œ", "oe", "Œ", "oe",
		"ø", "o", "Ø", "o",
		"đ", "d", "Đ", "d",
		"ł", "l", "Ł", "l",
		"þ", "th", "Þ", "th",
		"ı", "i",
	)
)

// Slugify turns text into a lowercase ASCII slug. Accents are stripped,
// runs of anything else than [a-z0-9] become one "-", and leading or
// trailing separators are trimmed. Text without any usable character
// yields "".
//
// Example: "Crème Brûlée, 2 pcs" -> "creme-brulee-2-pcs"
func Slugify(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, text)
	if err != nil {
		s = text
	}

	s = transliterations.Replace(s)
	s = strings.ToLower(s)
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug slugifies text and appends -1, -2, ... until exists reports
// the candidate as free. An empty slug is searched like any other, so the
// candidates are "", "-1", "-2", ...
func UniqueSlug(text string, exists func(candidate string) (bool, error)) (string, error) {
	base := Slugify(text)
	candidate := base

	for n := 1; ; n++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
