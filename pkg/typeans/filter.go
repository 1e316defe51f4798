package typeans

import (
	"fmt"
	"strings"

	"github.com/ruoyu-qian/typedeck/pkg/diff"
)

// Renderer builds the answer-side comparison fragment.
type Renderer struct {
	engine *diff.Engine
}

// NewRenderer returns a Renderer comparing answers through engine.
func NewRenderer(engine *diff.Engine) *Renderer {
	return &Renderer{engine: engine}
}

// FilterAnswer builds the comparison fragment for the revealed answer
// and substitutes it for every placeholder occurrence in answerText.
// The substitution is literal, so $ and backslash sequences in the
// fragment or the answers survive untouched.
func (r *Renderer) FilterAnswer(answerText, typed, correct string, cfg Config) string {
	var sb strings.Builder
	if cfg.SuppressCodeFormatting {
		sb.WriteString(`<div><span id="typeans">`)
	} else {
		sb.WriteString(`<div><code id="typeans">`)
	}
	switch {
	case typed != "" && typed == correct:
		sb.WriteString(diff.WrapGood(correct))
		sb.WriteString(`<span id="typecheckmark">✔</span>`)
	case typed != "":
		right, wrong := r.engine.DiffedHTMLStrings(correct, typed)
		sb.WriteString(right)
		sb.WriteString(`<br><span id="typearrow">&darr;</span><br>`)
		sb.WriteString(wrong)
	case cfg.UseInputTag:
		// The UI renders an input control here; leave the answer bare.
		sb.WriteString(correct)
	default:
		sb.WriteString(diff.WrapMissing(correct))
	}
	if cfg.SuppressCodeFormatting {
		sb.WriteString(`</span></div>`)
	} else {
		sb.WriteString(`</code></div>`)
	}
	return placeholderPattern.ReplaceAllLiteralString(answerText, sb.String())
}

// FilterQuestion replaces the first placeholder in the question markup
// with what the front side should show: the warning text when
// resolution failed, an HTML input when configured, or a dotted prompt.
// Text without a placeholder passes through unchanged.
func (s *State) FilterQuestion(questionText string, cfg Config) string {
	loc := placeholderPattern.FindStringIndex(questionText)
	if loc == nil {
		return questionText
	}
	var repl string
	switch {
	case s.res == resolutionWarning:
		repl = s.warning
	case cfg.UseInputTag:
		repl = fmt.Sprintf(`<center><input type="text" name="typed" id="typeans" onfocus="taFocus();" onblur="taBlur(this);" onkeypress="return taKey(this, event)" autocomplete="off" style="font-family: '%s'; font-size: %dpx;"></center>`, s.font, s.size)
	default:
		repl = `<span id="typeans" class="typePrompt">........</span>`
	}
	return questionText[:loc[0]] + repl + questionText[loc[1]:]
}

// StripPlaceholders removes every placeholder occurrence. Used on the
// answer side when the card expects no typed answer.
func StripPlaceholders(text string) string {
	return placeholderPattern.ReplaceAllLiteralString(text, "")
}

// SplitPlaceholder cuts text around the first placeholder, for callers
// that draw their own comparison where the placeholder sat. Text without
// a placeholder comes back whole in before.
func SplitPlaceholder(text string) (before, after string, found bool) {
	loc := placeholderPattern.FindStringIndex(text)
	if loc == nil {
		return text, "", false
	}
	return text[:loc[0]], text[loc[1]:], true
}
