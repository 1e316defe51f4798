// Package typeans locates the type-answer placeholder in rendered card
// markup, resolves which note field supplies the expected answer, and
// builds the comparison fragment shown once the learner submits.
//
// A card opts in by putting [[type:FieldName]] in its question template,
// or [[type:cloze:FieldName]] to compare against a single cloze deletion.
package typeans

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Config carries the presentation switches for typed answers. It is
// built once from settings and shared read-only across cards.
type Config struct {
	// UseInputTag injects a real HTML input on the question side and
	// suppresses the "missing answer" decoration when nothing was typed.
	UseInputTag bool
	// SuppressCodeFormatting wraps the comparison in <span> instead of
	// the monospace <code> element.
	SuppressCodeFormatting bool
	// AutoFocus is consumed by the UI layer only; the markup filters
	// ignore it.
	AutoFocus bool
}

type resolution int

const (
	resolutionNone resolution = iota
	resolutionAnswer
	resolutionWarning
)

// State is the resolved typed-answer session for one displayed card.
// Exactly one of Correct or Warning is meaningful after resolution,
// except when the named field exists but holds no text, in which case
// both are absent. A fresh State is produced per card, so the typed
// input always starts empty.
type State struct {
	res     resolution
	correct string
	warning string
	input   string
	font    string
	size    int
}

// Correct returns the expected answer text when resolution produced one.
func (s *State) Correct() (string, bool) {
	return s.correct, s.res == resolutionAnswer
}

// Warning returns the front-side warning for cards whose placeholder
// named an unresolvable field.
func (s *State) Warning() (string, bool) {
	return s.warning, s.res == resolutionWarning
}

// Expecting reports whether the card expects the learner to type an
// answer.
func (s *State) Expecting() bool {
	return s.res == resolutionAnswer
}

// SetInput records the learner's current input. Callers assign the full
// string on every change; the value is kept verbatim until compared.
func (s *State) SetInput(v string) {
	s.input = v
}

// Input returns the learner's current input.
func (s *State) Input() string {
	return s.input
}

// Font returns the comparison font of the resolved field.
func (s *State) Font() string {
	return s.font
}

// FontSize returns the comparison font size of the resolved field.
func (s *State) FontSize() int {
	return s.size
}

// CleanAnswer prepares raw typed input for comparison: surrounding
// whitespace is trimmed and the remainder is normalized to NFC so typed
// and stored answers compare codepoint for codepoint.
func CleanAnswer(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return norm.NFC.String(trimmed)
}
