package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// PageCard is one rendered card ready for inclusion in an HTML page.
type PageCard struct {
	Title    string
	Question string
	Answer   string
	// Markdown converts both sides from Markdown before embedding, for
	// note types that opt in.
	Markdown bool
}

const pageStyle = `body { font-family: sans-serif; max-width: 40em; margin: 2em auto; padding: 0 1em; }
.card { border: 1px solid #ccc; border-radius: 6px; padding: 1em; margin-bottom: 1.5em; }
.card h2 { margin-top: 0; font-size: 1em; color: #666; }
.side { padding: 0.5em 0; }
.side + .side { border-top: 1px dashed #ccc; }
.cloze { font-weight: bold; color: #0645ad; }
.typePrompt { color: #888; }
#typeans { display: inline-block; padding: 0.2em 0.4em; }
.typeGood { background: #afa; }
.typeBad { background: #faa; }
.typeMissed { background: #ccc; }`

// Page wraps rendered cards into a standalone HTML document.
func Page(title string, cards []PageCard) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString(`<meta charset="utf-8">` + "\n")
	sb.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	sb.WriteString("<style>\n" + pageStyle + "\n</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString("<h1>" + html.EscapeString(title) + "</h1>\n")

	for _, c := range cards {
		question, answer := c.Question, c.Answer
		if c.Markdown {
			question = Markdown(question)
			answer = Markdown(answer)
		}
		sb.WriteString(`<div class="card">` + "\n")
		if c.Title != "" {
			sb.WriteString(fmt.Sprintf("<h2>%s</h2>\n", html.EscapeString(c.Title)))
		}
		sb.WriteString(`<div class="side">` + question + "</div>\n")
		sb.WriteString(`<div class="side">` + answer + "</div>\n")
		sb.WriteString("</div>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// Markdown converts Markdown source to HTML. Inline HTML in the source,
// including the comparison spans, passes through untouched.
func Markdown(src string) string {
	return strings.TrimSpace(string(blackfriday.Run([]byte(src))))
}
