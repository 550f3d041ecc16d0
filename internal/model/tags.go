package model

import (
	"slices"
	"strings"
)

// ParseTags splits stored tag text into individual tags. Double quotes
// group several words into one tag. Unquoted text is split on commas when
// it contains any, otherwise on whitespace. The result is deduplicated and
// sorted.
func ParseTags(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	var words []string
	if !strings.Contains(input, `"`) {
		return uniqueSorted(splitTrim(input))
	}

	var unquoted, quoted strings.Builder
	inQuote := false
	for _, r := range input {
		switch {
		case r == '"' && !inQuote:
			inQuote = true
			quoted.Reset()
			unquoted.WriteByte(' ')
		case r == '"':
			inQuote = false
			if w := strings.TrimSpace(quoted.String()); w != "" {
				words = append(words, w)
			}
		case inQuote:
			quoted.WriteRune(r)
		default:
			unquoted.WriteRune(r)
		}
	}
	// An unclosed quote is read as plain text.
	if inQuote {
		unquoted.WriteString(quoted.String())
	}

	words = append(words, splitTrim(unquoted.String())...)
	return uniqueSorted(words)
}

func splitTrim(s string) []string {
	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Fields(s)
	}
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func uniqueSorted(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	slices.Sort(words)
	return slices.Compact(words)
}
