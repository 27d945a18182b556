package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/quizextract/internal/document"
	"github.com/hyperifyio/quizextract/internal/extract"
	"github.com/hyperifyio/quizextract/internal/report"
	"github.com/hyperifyio/quizextract/internal/scan"
)

// App runs the extraction pipeline over one directory with a fixed
// configuration.
type App struct {
	cfg       Config
	markers   extract.Markers
	extractor extract.Extractor
	now       func() time.Time
}

// Summary counts per-file outcomes of one run.
type Summary struct {
	Found   int
	Written int
	Empty   int
	Failed  int
}

// New builds an App from cfg. The configured markers are merged over the
// defaults and compiled; invalid markers are an error.
func New(cfg Config) (*App, error) {
	markers := extract.DefaultMarkers.Merge(cfg.Markers)
	x, err := extract.NewMarkerExtractor(markers)
	if err != nil {
		return nil, fmt.Errorf("init extractor: %w", err)
	}
	return &App{cfg: cfg, markers: markers, extractor: x, now: time.Now}, nil
}

// Run processes every HTML export in the configured directory. Per-file parse
// and write failures are logged and counted; they never abort the batch. Only
// an unreadable directory or cancellation returns an error.
func (a *App) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	files, err := scan.Scan(a.cfg.Dir)
	if err != nil {
		return sum, err
	}
	sum.Found = len(files)
	if len(files) == 0 {
		log.Info().Str("dir", a.cfg.Dir).Msg("no HTML files found")
		return sum, nil
	}
	log.Info().Str("dir", a.cfg.Dir).Int("files", len(files)).Msg("found HTML files")

	stems := report.OutputStems(files)
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		n, err := a.processFile(path, stems[i])
		var pe *document.ParseError
		var ioe *report.IOError
		switch {
		case errors.As(err, &pe):
			sum.Failed++
			log.Warn().Err(pe.Err).Str("file", path).Msg("parse failed; skipping file")
		case errors.As(err, &ioe):
			sum.Failed++
			log.Error().Err(ioe.Err).Str("file", path).Str("op", ioe.Op).Str("out", ioe.Path).Msg("write failed; skipping file")
		case err != nil:
			sum.Failed++
			log.Error().Err(err).Str("file", path).Msg("processing failed; skipping file")
		case n == 0 && !a.cfg.WriteEmpty:
			sum.Empty++
			log.Warn().Str("file", path).Msg("no questions found")
		default:
			sum.Written++
		}
	}
	return sum, nil
}

// processFile runs parse, extract, format and write for one file and returns
// the number of questions found. Outputs are named after stem. Nothing is
// written for zero questions unless WriteEmpty is set, and a report left by an
// earlier run is removed.
func (a *App) processFile(path, stem string) (int, error) {
	log.Debug().Str("file", path).Msg("processing")
	doc, err := document.Parse(path, document.Options{Encoding: a.cfg.Encoding})
	if err != nil {
		return 0, err
	}
	questions := a.extractor.Extract(doc)
	out := stem + ".txt"
	if len(questions) == 0 && !a.cfg.WriteEmpty {
		return 0, removeStaleReport(out)
	}

	rep := report.Report{
		Source:         filepath.Base(path),
		MarkersVersion: a.markers.Version,
		Questions:      questions,
	}
	text := report.Format(rep)
	if err := report.Write(text, out); err != nil {
		return len(questions), err
	}
	choice, subjective := rep.Counts()
	log.Info().Str("file", path).Str("out", out).Int("questions", len(questions)).
		Int("choice", choice).Int("subjective", subjective).Msg("wrote report")

	if a.cfg.PDF {
		pdfOut := stem + ".pdf"
		if err := report.WritePDF(text, pdfOut, report.PDFOptions{FontPath: a.cfg.PDFFontPath}); err != nil {
			return len(questions), err
		}
		log.Debug().Str("out", pdfOut).Msg("wrote PDF report")
	}
	if a.cfg.Manifest {
		meta := buildManifestMeta(doc, rep, text, a.now())
		data, err := marshalManifestJSON(meta, buildManifestEntries(questions))
		if err != nil {
			return len(questions), fmt.Errorf("encode manifest: %w", err)
		}
		side := deriveManifestSidecarPath(out)
		if err := report.Write(string(data), side); err != nil {
			return len(questions), err
		}
		log.Debug().Str("out", side).Msg("wrote manifest")
	}
	return len(questions), nil
}

// removeStaleReport deletes a text report and its manifest sidecar written by
// an earlier run. Files that do not carry the report header are left alone.
func removeStaleReport(out string) error {
	ok, err := report.IsReport(out)
	if err != nil {
		return &report.IOError{Path: out, Op: "inspect", Err: err}
	}
	if !ok {
		return nil
	}
	for _, p := range []string{out, deriveManifestSidecarPath(out)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return &report.IOError{Path: p, Op: "remove", Err: err}
		}
	}
	log.Info().Str("out", out).Msg("removed stale report")
	return nil
}
