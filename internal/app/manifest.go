package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/hyperifyio/quizextract/internal/document"
	"github.com/hyperifyio/quizextract/internal/extract"
	"github.com/hyperifyio/quizextract/internal/report"
)

// manifestEntry is a compact record of a single extracted question.
type manifestEntry struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Kind    string `json:"kind"`
	Options int    `json:"options"`
	SHA256  string `json:"sha256"`
	Chars   int    `json:"chars"`
}

// manifestMeta captures run details that tie a report to its exact source.
type manifestMeta struct {
	Tool           string    `json:"tool"`
	Version        string    `json:"version"`
	Source         string    `json:"source"`
	SourceSHA256   string    `json:"source_sha256"`
	Encoding       string    `json:"encoding"`
	Markers        string    `json:"markers"`
	Questions      int       `json:"questions"`
	MultipleChoice int       `json:"multiple_choice"`
	Subjective     int       `json:"subjective"`
	ReportSHA256   string    `json:"report_sha256"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of the given bytes.
func computeSHA256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func buildManifestMeta(doc *document.Document, rep report.Report, text string, now time.Time) manifestMeta {
	choice, subjective := rep.Counts()
	return manifestMeta{
		Tool:           "quizextract",
		Version:        BuildVersion,
		Source:         rep.Source,
		SourceSHA256:   computeSHA256Hex(doc.Raw),
		Encoding:       doc.Encoding,
		Markers:        rep.MarkersVersion,
		Questions:      len(rep.Questions),
		MultipleChoice: choice,
		Subjective:     subjective,
		ReportSHA256:   computeSHA256Hex([]byte(text)),
		GeneratedAt:    now.UTC(),
	}
}

// buildManifestEntries digests each question's prompt.
func buildManifestEntries(questions []extract.Question) []manifestEntry {
	out := make([]manifestEntry, 0, len(questions))
	for _, q := range questions {
		prompt := strings.TrimSpace(q.Prompt)
		out = append(out, manifestEntry{
			Index:   q.Index,
			ID:      q.ID,
			Kind:    q.Kind.String(),
			Options: len(q.Options),
			SHA256:  computeSHA256Hex([]byte(prompt)),
			Chars:   len(prompt),
		})
	}
	return out
}

// marshalManifestJSON encodes a machine-readable sidecar manifest.
func marshalManifestJSON(meta manifestMeta, entries []manifestEntry) ([]byte, error) {
	payload := struct {
		Meta      manifestMeta    `json:"meta"`
		Questions []manifestEntry `json:"questions"`
	}{Meta: meta, Questions: entries}
	return json.MarshalIndent(payload, "", "  ")
}

// deriveManifestSidecarPath returns a sidecar JSON path next to the text report.
func deriveManifestSidecarPath(outputPath string) string {
	return outputPath + ".manifest.json"
}
