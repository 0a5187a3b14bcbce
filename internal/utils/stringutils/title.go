package stringutils

import (
	"regexp"
	"strings"
)

const (
	// DefaultTitle is used when a thread has no derivable title yet.
	DefaultTitle = "New Chat"

	titleMaxRunes = 40
	titleEllipsis = "…"
)

var newlinePattern = regexp.MustCompile(`\r?\n`)

// DeriveThreadTitle builds a thread title from the first user message: newlines
// collapse to spaces, surrounding whitespace is trimmed, and anything longer
// than 40 characters is cut to 40 plus an ellipsis. Empty input falls back to
// DefaultTitle. The derivation is pure, so re-deriving from the same text
// always yields the same title.
func DeriveThreadTitle(content string) string {
	t := strings.TrimSpace(newlinePattern.ReplaceAllString(content, " "))
	if t == "" {
		return DefaultTitle
	}

	runes := []rune(t)
	if len(runes) > titleMaxRunes {
		return string(runes[:titleMaxRunes]) + titleEllipsis
	}
	return t
}

// IsDerivedTitle reports whether a stored title is still the placeholder, i.e.
// the first-message derivation should run. A user rename always sticks.
func IsDerivedTitle(title string) bool {
	return title == "" || title == DefaultTitle
}
