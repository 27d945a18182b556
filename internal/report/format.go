// Package report renders extracted questions as text and writes the
// resulting artifacts next to their source file.
package report

import (
	"strconv"
	"strings"

	"github.com/hyperifyio/quizextract/internal/extract"
)

const rule = "============================================================"

const reportHeader = rule + "\nQuestion Extraction Report\n" + rule + "\n"

// Report is the ordered question list of one source document.
type Report struct {
	Source         string
	MarkersVersion string
	Questions      []extract.Question
}

// Counts returns the number of multiple-choice and subjective questions.
func (r Report) Counts() (choice, subjective int) {
	for _, q := range r.Questions {
		if q.Kind == extract.MultipleChoice {
			choice++
		} else {
			subjective++
		}
	}
	return choice, subjective
}

// Format renders r as numbered blocks in question order. The output holds no
// timestamps or other run-dependent data.
func Format(r Report) string {
	choice, subjective := r.Counts()
	var b strings.Builder
	b.WriteString(reportHeader)
	if r.Source != "" {
		b.WriteString("Source: " + r.Source + "\n")
	}
	if r.MarkersVersion != "" {
		b.WriteString("Markers: " + r.MarkersVersion + "\n")
	}
	b.WriteString("Total: " + strconv.Itoa(len(r.Questions)) + "\n")
	b.WriteString("Multiple choice: " + strconv.Itoa(choice) + "\n")
	b.WriteString("Subjective: " + strconv.Itoa(subjective) + "\n")
	b.WriteString(rule + "\n")

	for i, q := range r.Questions {
		b.WriteString("\n")
		writeQuestion(&b, i+1, q)
	}
	return b.String()
}

func writeQuestion(b *strings.Builder, n int, q extract.Question) {
	b.WriteString(strconv.Itoa(n))
	b.WriteString(". ")
	b.WriteString(q.Prompt)
	b.WriteString("\n   Type: ")
	b.WriteString(q.Kind.String())
	b.WriteString("\n")
	if q.Label != "" {
		b.WriteString("   Label: " + q.Label + "\n")
	}
	if q.Kind == extract.MultipleChoice {
		b.WriteString("   Options:\n")
		for _, o := range q.Options {
			b.WriteString("     " + o + "\n")
		}
		b.WriteString("   Answer: " + indentContinuation(q.Answer) + "\n")
		return
	}
	if strings.TrimSpace(q.Answer) != "" {
		b.WriteString("   Answer: " + indentContinuation(q.Answer) + "\n")
	}
}

// indentContinuation aligns the lines of a multi-line answer under the first.
func indentContinuation(s string) string {
	return strings.ReplaceAll(s, "\n", "\n           ")
}
