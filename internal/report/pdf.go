package report

import (
	"bufio"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFOptions tunes PDF rendering.
type PDFOptions struct {
	// FontPath is a TrueType font registered as UTF-8. Without it the core
	// Helvetica font is used and text is translated to cp1252, which drops
	// characters outside that code page (CJK included).
	FontPath string
}

var questionHeading = regexp.MustCompile(`^\d+\. `)

// WritePDF renders the formatted text report into a PDF at dest.
func WritePDF(text, dest string, opts PDFOptions) error {
	unicodeFont := strings.TrimSpace(opts.FontPath) != ""
	fontDir := ""
	if unicodeFont {
		// gofpdf joins font files onto its font directory
		fontDir = filepath.Dir(opts.FontPath)
	}
	pdf := gofpdf.New("P", "mm", "A4", fontDir)
	family := "Helvetica"
	tr := func(s string) string { return s }
	if unicodeFont {
		family = "report"
		pdf.AddUTF8Font(family, "", filepath.Base(opts.FontPath))
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetFont(family, "", 10)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			pdf.Ln(4)
			continue
		}
		// Only the core font has a bold face registered.
		if !unicodeFont && questionHeading.MatchString(line) {
			pdf.SetFont(family, "B", 10)
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
			pdf.SetFont(family, "", 10)
			continue
		}
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	if err := pdf.Error(); err != nil {
		return &IOError{Path: dest, Op: "render", Err: err}
	}
	return writeAtomic(dest, func(w io.Writer) error {
		return pdf.Output(w)
	})
}
