package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	breakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</(?:div|p|li)>`)
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML reduces card markup to plain text. Line breaks and block
// boundaries survive as newlines, every other tag is dropped and
// entities are decoded.
func StripHTML(text string) string {
	text = breakPattern.ReplaceAllString(text, "\n")
	text = tagPattern.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}

// Flatten collapses whitespace runs into single spaces and trims the ends.
func Flatten(text string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// Excerpt returns a one-line plain-text preview of at most max runes,
// truncating with an ellipsis. max <= 0 disables truncation.
func Excerpt(text string, max int) string {
	flat := Flatten(StripHTML(text))
	runes := []rune(flat)
	if max <= 0 || len(runes) <= max {
		return flat
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
