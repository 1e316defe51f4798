package typeans

import (
	"regexp"
	"strings"

	"github.com/ruoyu-qian/typedeck/pkg/i18n"
	"github.com/ruoyu-qian/typedeck/pkg/models"
)

// placeholderPattern matches the type-answer marker in rendered card
// markup. Non-greedy, so only the nearest ]] closes a marker.
var placeholderPattern = regexp.MustCompile(`\[\[type:(.+?)\]\]`)

const clozePrefix = "cloze:"

// FieldSource supplies raw field text by field name. *models.Note
// implements it.
type FieldSource interface {
	FieldValue(name string) (string, bool)
}

// Resolver computes the typed-answer state for a displayed card.
type Resolver struct {
	msgs *i18n.Catalog
}

// NewResolver returns a Resolver that renders warnings through msgs.
func NewResolver(msgs *i18n.Catalog) *Resolver {
	return &Resolver{msgs: msgs}
}

// Resolve inspects the rendered question markup for a type-answer
// placeholder and resolves the field it names against the note's field
// definitions. Only the first placeholder is considered. cardOrd is the
// card's zero-based ordinal; a cloze placeholder is narrowed to the
// deletion numbered cardOrd+1.
//
// The returned state distinguishes three outcomes: an answer is
// expected, the placeholder named something unresolvable (warning), or
// no answer applies at all, which covers both the missing placeholder
// and a resolvable field that holds no text.
func (r *Resolver) Resolve(questionText string, cardOrd int, note FieldSource, fields []models.FieldDef) *State {
	st := &State{}
	m := placeholderPattern.FindStringSubmatch(questionText)
	if m == nil {
		return st
	}

	tag := m[1]
	clozeIdx := 0
	if strings.HasPrefix(tag, clozePrefix) {
		clozeIdx = cardOrd + 1
		tag = tag[len(clozePrefix):]
	}

	value := ""
	found := false
	for _, fd := range fields {
		if fd.Name != tag {
			continue
		}
		if raw, ok := note.FieldValue(fd.Name); ok {
			value = raw
			if clozeIdx != 0 {
				value = ClozeAlternatives(value, clozeIdx)
			}
			found = true
		}
		st.font = fd.Font
		st.size = fd.Size
		break
	}

	switch {
	case !found:
		st.res = resolutionWarning
		if clozeIdx != 0 {
			st.warning = r.msgs.EmptyCard()
		} else {
			st.warning = r.msgs.UnknownField(tag)
		}
	case value == "":
		// The field exists but has no text for this card. Not worth a
		// warning; the card just has nothing to type.
		st.res = resolutionNone
	default:
		st.res = resolutionAnswer
		st.correct = value
	}
	return st
}
