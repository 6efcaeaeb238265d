package export

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeps     = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts s to a lowercase ASCII slug of letters, digits, '_' and '-'.
// Characters with no ASCII decomposition are dropped.
func Slugify(s string) string {
	decomposed := norm.NFKD.String(s)

	var b strings.Builder
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	slug := nonSlugChars.ReplaceAllString(strings.ToLower(b.String()), "")
	slug = slugSeps.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-_")
}

// Filename returns the download name of a quiz: the slugified title, or
// quiz-<id> when the title has no usable characters, plus the extension.
func Filename(title, id, ext string) string {
	base := Slugify(title)
	if base == "" {
		base = "quiz-" + id
	}
	return base + "." + ext
}
