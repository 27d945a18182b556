package extract

import (
	"strconv"
	"strings"
	"testing"

	"github.com/hyperifyio/quizextract/internal/document"
)

func BenchmarkExtract(b *testing.B) {
	x, err := NewMarkerExtractor(DefaultMarkers)
	if err != nil {
		b.Fatalf("NewMarkerExtractor: %v", err)
	}
	for _, n := range []int{10, 100, 500} {
		doc, err := document.FromBytes("bench.html", makeExport(n), document.Options{})
		if err != nil {
			b.Fatalf("FromBytes: %v", err)
		}
		b.Run("questions="+strconv.Itoa(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = x.Extract(doc)
			}
		})
	}
}

func makeExport(n int) []byte {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 1; i <= n; i++ {
		if i%4 == 0 {
			sb.WriteString(subjectiveBlock(i, sampleText, sampleText))
			continue
		}
		sb.WriteString(choiceBlock(i, sampleText, "A", "one", "two", "three", "four"))
	}
	sb.WriteString("</body></html>")
	return []byte(sb.String())
}

const sampleText = "Lorem ipsum dolor sit amet, consectetur adipiscing elit?"
