// Package extract turns a parsed exam export into an ordered list of
// questions using a versioned set of markup markers.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/hyperifyio/quizextract/internal/document"
)

// Kind classifies a question by whether it offers enumerated options.
type Kind int

const (
	Subjective Kind = iota
	MultipleChoice
)

func (k Kind) String() string {
	if k == MultipleChoice {
		return "Multiple Choice"
	}
	return "Subjective"
}

// Question is one extracted unit. Options are rendered "A. text".
type Question struct {
	Index   int
	ID      string
	Kind    Kind
	Label   string
	Prompt  string
	Options []string
	Answer  string
}

// Extractor converts a parsed document into questions in document order.
type Extractor interface {
	Extract(doc *document.Document) []Question
}

// MarkerExtractor locates question blocks by Markers.
type MarkerExtractor struct {
	m compiledMarkers
}

// NewMarkerExtractor validates m and returns an extractor for it.
func NewMarkerExtractor(m Markers) (*MarkerExtractor, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	c, err := m.compile()
	if err != nil {
		return nil, err
	}
	return &MarkerExtractor{m: c}, nil
}

// Markers returns the contract the extractor was built with.
func (x *MarkerExtractor) Markers() Markers { return x.m.Markers }

func (x *MarkerExtractor) Extract(doc *document.Document) []Question {
	if doc == nil || doc.Root == nil {
		return nil
	}
	blocks := document.FindAll(doc.Root, document.Element("div", x.m.Block))
	out := make([]Question, 0, len(blocks))
	for _, b := range blocks {
		q, ok := x.parseBlock(b)
		if !ok {
			continue
		}
		q.Index = len(out) + 1
		out = append(out, q)
	}
	return out
}

func (x *MarkerExtractor) parseBlock(block document.Node) (Question, bool) {
	title := document.FindFirst(block, document.Element("h3", x.m.Title))
	if title == nil {
		return Question{}, false
	}
	q := Question{
		ID:     strings.TrimSpace(block.Attr(x.m.BlockID)),
		Label:  x.typeLabel(title),
		Prompt: promptText(title),
	}
	var checked []string
	q.Options, checked = x.options(block)
	if len(q.Options) > 0 {
		q.Kind = MultipleChoice
	}
	q.Answer = x.answer(block, q.Kind, checked)
	return q, true
}

func (x *MarkerExtractor) typeLabel(title document.Node) string {
	if x.m.TypeLabel == "" {
		return ""
	}
	span := document.FindFirst(title, document.Element("span", x.m.TypeLabel))
	if span == nil {
		return ""
	}
	label := strings.NewReplacer("(", "", ")", "", "（", "", "）", "").Replace(span.Text())
	return collapseSpaces(label)
}

var leadingOrdinal = regexp.MustCompile(`^\d+\s*[.、．]\s*`)

// promptText joins the title's children except spans; the type label and
// score live in spans.
func promptText(title document.Node) string {
	parts := make([]string, 0, 4)
	for _, c := range title.Children() {
		if c.Tag() == "span" {
			continue
		}
		if s := collapseSpaces(c.Text()); s != "" {
			parts = append(parts, s)
		}
	}
	prompt := strings.Join(parts, " ")
	return strings.TrimSpace(leadingOrdinal.ReplaceAllString(prompt, ""))
}

// options returns rendered choices and the letters of checked ones.
func (x *MarkerExtractor) options(block document.Node) ([]string, []string) {
	if x.m.Option == "" {
		return nil, nil
	}
	var opts, checked []string
	for _, o := range document.FindAll(block, document.Element("div", x.m.Option)) {
		span := document.FindFirst(o, func(n document.Node) bool {
			return n.Tag() == "span" && anyClassMatches(n, x.m.letter)
		})
		body := document.FindFirst(o, document.Element("div", x.m.OptionText))
		if span == nil || body == nil {
			continue
		}
		letter := collapseSpaces(span.Text())
		opts = append(opts, letter+". "+collapseSpaces(body.Text()))
		if x.m.OptionChecked != "" && (span.HasClass(x.m.OptionChecked) || o.HasClass(x.m.OptionChecked)) {
			checked = append(checked, letter)
		}
	}
	return opts, checked
}

// answer tries the hidden input first. Multiple choice then falls back to the
// checked letters; subjective to a textarea and then a filled-in answer div.
func (x *MarkerExtractor) answer(block document.Node, kind Kind, checked []string) string {
	if x.m.inputID != nil {
		in := document.FindFirst(block, func(n document.Node) bool {
			return n.Tag() == "input" && x.m.inputID.MatchString(n.Attr("id"))
		})
		if in != nil {
			if v := cleanAnswer(in.Attr("value")); v != "" {
				return v
			}
		}
	}
	if kind == MultipleChoice {
		return strings.Join(checked, "")
	}
	if ta := document.FindFirst(block, document.Element("textarea")); ta != nil {
		if v := cleanAnswer(ta.Text()); v != "" {
			return v
		}
	}
	if x.m.ansBlock != nil {
		// option containers also match the answer pattern (answerBg, answer_p)
		isOption := func(n document.Node) bool {
			return n.HasClass(x.m.Option) || n.HasClass(x.m.OptionText)
		}
		div := document.FindFirstPruned(block, func(n document.Node) bool {
			return n.Tag() == "div" && anyClassMatches(n, x.m.ansBlock)
		}, isOption)
		if div != nil {
			return cleanAnswer(div.Text())
		}
	}
	return ""
}

func anyClassMatches(n document.Node, re *regexp.Regexp) bool {
	if re == nil {
		return false
	}
	for _, c := range n.Classes() {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}

var tagRe = regexp.MustCompile(`<[^>]+>`)

// cleanAnswer strips markup that survives as text (textarea bodies carry raw
// editor HTML) and unescapes entities.
func cleanAnswer(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return normalizeWhitespace(s)
}

// normalizeWhitespace collapses runs inside lines, keeps at most one blank
// line between paragraphs and trims trailing blanks.
func normalizeWhitespace(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		collapsed := collapseSpaces(line)
		if collapsed == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, collapsed)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// collapseSpaces trims s and folds every whitespace run, NBSP included, into
// one space.
func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimRight(b.String(), " ")
}
