package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the input and collapses internal whitespace runs to
// a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeTitle(title string) string {
	return TrimAndNormalize(title)
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeLocation(location string) string {
	return TrimAndNormalize(location)
}

// NormalizeLabel lowercases in addition to whitespace normalization; used for
// category and skill tags so matching is case-insensitive.
func NormalizeLabel(label string) string {
	return strings.ToLower(TrimAndNormalize(label))
}

func NormalizeLabels(labels []string) []string {
	if labels == nil {
		return nil
	}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if n := NormalizeLabel(l); n != "" {
			out = append(out, n)
		}
	}
	return out
}
