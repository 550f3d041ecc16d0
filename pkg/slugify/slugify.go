package slugify

import (
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make returns the URL-safe, lowercase, hyphenated form of s.
func Make(s string) string {
	return slug.Make(s)
}

// MakeMax is Make capped at max bytes. Transliteration can make a slug
// longer than its source ("&" -> "and", "ß" -> "ss"), so slugs stored in
// fixed-width columns go through here.
func MakeMax(s string, max int) string {
	return Truncate(slug.Make(s), max)
}

// Truncate shortens a slug to at most max bytes, cutting at the last
// hyphen inside the limit when there is one. Slugs are ASCII.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if s[max] != '-' {
		if i := strings.LastIndexByte(cut, '-'); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, "-")
}

// RemoveAccents decomposes s (NFKD) and drops the combining marks, leaving
// the base characters: "café" becomes "cafe".
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
