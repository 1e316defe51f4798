// Package diff computes character-level comparisons between the correct
// answer and what the learner typed. The comparison is exposed twice: as
// raw segments for terminal styling, and as the pair of annotated HTML
// strings the card markup embeds.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op classifies one run of a comparison.
type Op int

const (
	// Equal text appears in both the correct and the typed answer.
	Equal Op = iota
	// Bad text was typed but is not part of the correct answer.
	Bad
	// Missing text belongs to the correct answer but was not typed.
	Missing
)

// Segment is one run of compared text.
type Segment struct {
	Op   Op
	Text string
}

// Engine wraps the diff-match-patch comparison. Create engines with New;
// an Engine is safe to reuse across comparisons.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// New returns a ready-to-use Engine.
func New() *Engine {
	return &Engine{dmp: diffmatchpatch.New()}
}

// Compare diffs the typed answer against the correct one and returns the
// runs in reading order. Semantic cleanup keeps the runs aligned with
// human-visible chunks rather than minimal edits.
func (e *Engine) Compare(correct, typed string) []Segment {
	diffs := e.dmp.DiffCleanupSemantic(e.dmp.DiffMain(typed, correct, false))
	segs := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			segs = append(segs, Segment{Op: Missing, Text: d.Text})
		case diffmatchpatch.DiffDelete:
			segs = append(segs, Segment{Op: Bad, Text: d.Text})
		case diffmatchpatch.DiffEqual:
			segs = append(segs, Segment{Op: Equal, Text: d.Text})
		}
	}
	return segs
}

// DiffedHTMLStrings returns two annotated HTML strings: the correct text
// with the parts the learner missed marked, and the typed text with the
// parts that were wrong marked. Equal runs are marked good on both sides.
func (e *Engine) DiffedHTMLStrings(correct, typed string) (string, string) {
	var right, wrong strings.Builder
	for _, seg := range e.Compare(correct, typed) {
		switch seg.Op {
		case Missing:
			right.WriteString(WrapMissing(seg.Text))
		case Bad:
			wrong.WriteString(WrapBad(seg.Text))
		case Equal:
			right.WriteString(WrapGood(seg.Text))
			wrong.WriteString(WrapGood(seg.Text))
		}
	}
	return right.String(), wrong.String()
}

// WrapGood marks text the learner got right.
func WrapGood(s string) string {
	return `<span class="typeGood">` + s + `</span>`
}

// WrapBad marks text the learner typed that is not in the correct answer.
func WrapBad(s string) string {
	return `<span class="typeBad">` + s + `</span>`
}

// WrapMissing marks correct text the learner left out.
func WrapMissing(s string) string {
	return `<span class="typeMissed">` + s + `</span>`
}
