package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperifyio/quizextract/internal/extract"
)

func sampleReport() Report {
	opts := []string{"A. 1", "B. 2", "C. 3", "D. 4"}
	return Report{
		Source:         "exam.html",
		MarkersVersion: "questionli-v1",
		Questions: []extract.Question{
			{Index: 1, Kind: extract.MultipleChoice, Label: "单选题", Prompt: "One?", Options: opts, Answer: "A"},
			{Index: 2, Kind: extract.MultipleChoice, Prompt: "Two?", Options: opts, Answer: "B"},
			{Index: 3, Kind: extract.MultipleChoice, Prompt: "Three?", Options: opts, Answer: "C"},
			{Index: 4, Kind: extract.Subjective, Prompt: "Why?", Answer: "because\nreasons"},
		},
	}
}

func TestFormat_Golden(t *testing.T) {
	r := sampleReport()
	r.Questions = []extract.Question{r.Questions[0], r.Questions[3]}
	want := rule + "\n" +
		"Question Extraction Report\n" +
		rule + "\n" +
		"Source: exam.html\n" +
		"Markers: questionli-v1\n" +
		"Total: 2\n" +
		"Multiple choice: 1\n" +
		"Subjective: 1\n" +
		rule + "\n" +
		"\n" +
		"1. One?\n" +
		"   Type: Multiple Choice\n" +
		"   Label: 单选题\n" +
		"   Options:\n" +
		"     A. 1\n" +
		"     B. 2\n" +
		"     C. 3\n" +
		"     D. 4\n" +
		"   Answer: A\n" +
		"\n" +
		"2. Why?\n" +
		"   Type: Subjective\n" +
		"   Answer: because\n" +
		"           reasons\n"
	if got := Format(r); got != want {
		t.Fatalf("Format mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestFormat_ScenarioBlocks(t *testing.T) {
	out := Format(sampleReport())
	if n := strings.Count(out, "Type: Multiple Choice"); n != 3 {
		t.Fatalf("expected 3 multiple choice blocks, got %d", n)
	}
	if n := strings.Count(out, "Type: Subjective"); n != 1 {
		t.Fatalf("expected 1 subjective block, got %d", n)
	}
	for i, p := range []string{"1. One?", "2. Two?", "3. Three?", "4. Why?"} {
		if !strings.Contains(out, "\n"+p+"\n") {
			t.Fatalf("block %d %q missing", i+1, p)
		}
	}
	tail := out[strings.Index(out, "4. Why?"):]
	if strings.Contains(tail, "Options:") {
		t.Fatalf("subjective block must not list options")
	}
}

func TestFormat_Deterministic(t *testing.T) {
	r := sampleReport()
	first := Format(r)
	for i := 0; i < 5; i++ {
		if Format(r) != first {
			t.Fatalf("Format output differs across runs")
		}
	}
}

func TestFormat_EmptyAnswers(t *testing.T) {
	r := Report{Questions: []extract.Question{
		{Kind: extract.MultipleChoice, Prompt: "P", Options: []string{"A. x", "B. y"}},
		{Kind: extract.Subjective, Prompt: "S"},
	}}
	out := Format(r)
	if !strings.Contains(out, "   Answer: \n") {
		t.Fatalf("multiple choice should always print an answer line")
	}
	if strings.Count(out, "Answer:") != 1 {
		t.Fatalf("subjective without answer should not print one:\n%s", out)
	}
	if strings.Contains(out, "Source:") || strings.Contains(out, "Markers:") {
		t.Fatalf("empty header fields should be omitted")
	}
}

func TestWrite_OverwritesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "exam.txt")
	if err := Write("first run with longer content\n", dest); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write("second\n", dest); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second\n" {
		t.Fatalf("content=%q, want second", b)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the report in dir, got %d entries", len(entries))
	}
	info, _ := os.Stat(dest)
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("mode=%v, want 0644", info.Mode().Perm())
	}
}

func TestWrite_FailureIsIOError(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "exam.txt")
	err := Write("x", dest)
	var ioe *IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("expected *IOError, got %T %v", err, err)
	}
	if ioe.Path != dest || ioe.Op != "create" {
		t.Fatalf("unexpected IOError fields: %+v", ioe)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestOutputStems(t *testing.T) {
	srcs := []string{
		filepath.Join("d", "exam.final.html"),
		filepath.Join("d", "exam.htm"),
		filepath.Join("d", "exam.html"),
		filepath.Join("d", "Exam.HTML"),
	}
	got := OutputStems(srcs)
	want := []string{
		filepath.Join("d", "exam.final"),
		filepath.Join("d", "exam"),
		filepath.Join("d", "exam.html"),
		filepath.Join("d", "Exam.HTML-2"),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stem %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsReport(t *testing.T) {
	dir := t.TempDir()
	ours := filepath.Join(dir, "ours.txt")
	if err := Write(Format(sampleReport()), ours); err != nil {
		t.Fatalf("Write: %v", err)
	}
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("my notes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for path, want := range map[string]bool{ours: true, other: false, filepath.Join(dir, "missing.txt"): false} {
		got, err := IsReport(path)
		if err != nil || got != want {
			t.Fatalf("IsReport(%s)=%v,%v want %v", filepath.Base(path), got, err, want)
		}
	}
}

func TestWritePDF_CoreFont(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "exam.pdf")
	if err := WritePDF(Format(sampleReport()), dest, PDFOptions{}); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestWritePDF_MissingFontFails(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "exam.pdf")
	err := WritePDF("x", dest, PDFOptions{FontPath: filepath.Join(dir, "nofont.ttf")})
	var ioe *IOError
	if !errors.As(err, &ioe) || ioe.Op != "render" {
		t.Fatalf("expected render IOError, got %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Fatalf("no PDF should be written on render failure")
	}
}
