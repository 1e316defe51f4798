package models

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// FieldDef describes one field of a note type. Definition order matters:
// type-answer resolution walks the fields in order and uses the first
// name match.
type FieldDef struct {
	Name string `yaml:"name"`
	Font string `yaml:"font,omitempty"`
	Size int    `yaml:"size,omitempty"`
}

// Template is one card layout of a note type. Question and Answer hold
// card markup using {{Field}} substitutions, {{cloze:Field}} deletions
// and the [[type:Field]] placeholder.
type Template struct {
	Name     string `yaml:"name"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// NoteType defines the fields and card templates shared by a family of notes.
type NoteType struct {
	Name      string     `yaml:"name"`
	Fields    []FieldDef `yaml:"fields"`
	Templates []Template `yaml:"templates"`
	// Cloze note types derive one card per cloze ordinal found in the
	// note instead of one card per template.
	Cloze bool `yaml:"cloze,omitempty"`
	// Markdown note types have their field values rendered as Markdown
	// when exported to HTML.
	Markdown bool `yaml:"markdown,omitempty"`
}

// Field returns the definition of the named field.
func (nt *NoteType) Field(name string) (FieldDef, bool) {
	for _, f := range nt.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// Note is one unit of authored content: field values typed against a note
// type, filed under a deck.
type Note struct {
	ID       string            `yaml:"id"`
	Type     string            `yaml:"type"`
	Deck     string            `yaml:"deck"`
	Fields   map[string]string `yaml:"fields"`
	Tags     []string          `yaml:"tags,omitempty"`
	Path     string            `yaml:"-"`
	Modified time.Time         `yaml:"-"`
}

// NewNote creates a note with a fresh ID.
func NewNote(noteType, deck string) *Note {
	return &Note{
		ID:     uuid.NewString(),
		Type:   noteType,
		Deck:   deck,
		Fields: make(map[string]string),
	}
}

// FieldValue returns the raw text of the named field. A missing field is
// reported as not found, never as an error.
func (n *Note) FieldValue(name string) (string, bool) {
	v, ok := n.Fields[name]
	return v, ok
}

var clozeOrdPattern = regexp.MustCompile(`\{\{c(\d+)::`)

// ClozeOrdinals returns the distinct cloze numbers used across the note's
// fields, sorted ascending. Numbers are one-based as written in the text.
func (n *Note) ClozeOrdinals() []int {
	seen := make(map[int]struct{})
	var ords []int
	for _, value := range n.Fields {
		for _, m := range clozeOrdPattern.FindAllStringSubmatch(value, -1) {
			num, err := strconv.Atoi(m[1])
			if err != nil || num < 1 {
				continue
			}
			if _, ok := seen[num]; !ok {
				seen[num] = struct{}{}
				ords = append(ords, num)
			}
		}
	}
	sort.Ints(ords)
	return ords
}

// Card is one reviewable question/answer pair derived from a note. Ord is
// zero-based: for regular note types it indexes the template, for cloze
// note types it is the cloze number minus one.
type Card struct {
	Note *Note
	Type *NoteType
	Ord  int
}

// ID identifies the card across runs: the note ID qualified by the ordinal.
func (c *Card) ID() string {
	return c.Note.ID + "#" + strconv.Itoa(c.Ord)
}

// Template returns the card's template. Cloze note types use their first
// template for every ordinal.
func (c *Card) Template() (Template, bool) {
	if c.Type.Cloze {
		if len(c.Type.Templates) == 0 {
			return Template{}, false
		}
		return c.Type.Templates[0], true
	}
	if c.Ord < 0 || c.Ord >= len(c.Type.Templates) {
		return Template{}, false
	}
	return c.Type.Templates[c.Ord], true
}

// Cards derives the cards a note produces under its note type. Cloze notes
// yield one card per distinct cloze ordinal; notes without any cloze markup
// yield none. Regular notes yield one card per template.
func Cards(n *Note, nt *NoteType) []*Card {
	var cards []*Card
	if nt.Cloze {
		for _, ord := range n.ClozeOrdinals() {
			cards = append(cards, &Card{Note: n, Type: nt, Ord: ord - 1})
		}
		return cards
	}
	for i := range nt.Templates {
		cards = append(cards, &Card{Note: n, Type: nt, Ord: i})
	}
	return cards
}

// Deck groups notes for study.
type Deck struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// NewPerDay caps how many unseen cards a study session introduces.
	// Zero means the application default applies.
	NewPerDay int    `yaml:"new_per_day,omitempty"`
	Path      string `yaml:"-"`
}
