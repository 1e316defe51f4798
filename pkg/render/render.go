// Package render turns note content into card markup. Templates use
// {{Field}} substitution plus a few filters: {{cloze:Field}} renders the
// deletions for the card's ordinal, {{type:Field}} emits the type-answer
// marker handled downstream, and {{FrontSide}} embeds the rendered
// question into the answer side.
package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ruoyu-qian/typedeck/pkg/models"
)

var (
	tagPattern   = regexp.MustCompile(`\{\{([^{}]+?)\}\}`)
	clozePattern = regexp.MustCompile(`\{\{c(\d+)::(.+?)\}\}`)
)

// Card renders the question and answer markup for one card.
func Card(c *models.Card) (question, answer string, err error) {
	if c == nil || c.Note == nil || c.Type == nil {
		return "", "", fmt.Errorf("card is incomplete")
	}
	tmpl, ok := c.Template()
	if !ok {
		return "", "", fmt.Errorf("note type %s has no template for card %s", c.Type.Name, c.ID())
	}

	question = renderSide(tmpl.Question, c, "", false)
	answer = renderSide(tmpl.Answer, c, question, true)
	return question, answer, nil
}

func renderSide(tmpl string, c *models.Card, frontSide string, answerSide bool) string {
	return tagPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		tag := strings.TrimSpace(m[2 : len(m)-2])
		switch {
		case tag == "FrontSide":
			return frontSide
		case tag == "Tags":
			return strings.Join(c.Note.Tags, " ")
		case tag == "Deck":
			return c.Note.Deck
		case tag == "Type":
			return c.Type.Name
		case tag == "Card":
			if t, ok := c.Template(); ok {
				return t.Name
			}
			return ""
		case strings.HasPrefix(tag, "type:"):
			// Kept as a marker; the typeans filters replace it when the
			// card is shown.
			return "[[" + tag + "]]"
		case strings.HasPrefix(tag, "cloze:"):
			value, _ := c.Note.FieldValue(strings.TrimPrefix(tag, "cloze:"))
			return renderCloze(value, c.Ord+1, answerSide)
		default:
			value, _ := c.Note.FieldValue(tag)
			return value
		}
	})
}

// renderCloze shows the deletions for one ordinal: hidden (or hinted) on
// the question side, revealed on the answer side. Deletions belonging to
// other ordinals are flattened to their text.
func renderCloze(fieldText string, ord int, answerSide bool) string {
	return clozePattern.ReplaceAllStringFunc(fieldText, func(m string) string {
		sub := clozePattern.FindStringSubmatch(m)
		idx, _ := strconv.Atoi(sub[1])
		text := sub[2]
		hint := ""
		if i := strings.Index(text, "::"); i >= 0 {
			text, hint = text[:i], text[i+2:]
		}
		if idx != ord {
			return text
		}
		if answerSide {
			return `<span class="cloze">` + text + `</span>`
		}
		if hint != "" {
			return `<span class="cloze">[` + hint + `]</span>`
		}
		return `<span class="cloze">[...]</span>`
	})
}

// TemplateFields lists the note fields a template references, in order
// of first appearance. Filter prefixes are stripped and the built-in
// tags are skipped, so the result can be checked against a note type's
// field definitions.
func TemplateFields(tmpl string) []string {
	seen := make(map[string]struct{})
	var fields []string
	for _, m := range tagPattern.FindAllStringSubmatch(tmpl, -1) {
		tag := strings.TrimSpace(m[1])
		switch tag {
		case "FrontSide", "Tags", "Deck", "Type", "Card":
			continue
		}
		tag = strings.TrimPrefix(tag, "type:")
		tag = strings.TrimPrefix(tag, "cloze:")
		if tag == "" || strings.Contains(tag, "::") {
			// A stray deletion in the template, not a field reference.
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		fields = append(fields, tag)
	}
	return fields
}
