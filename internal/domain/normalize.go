package domain

import (
	"strings"
	"unicode"
)

// CleanLabel prepares a category, topic, name or country for storage:
//   - trims leading/trailing whitespace
//   - compresses every whitespace run (tabs, newlines) into one space
//
// Case, diacritics, hyphens and apostrophes are preserved, so the value
// stays human-readable and derived tags stay stable.
func CleanLabel(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
