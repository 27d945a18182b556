package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/quizextract/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		dir         string
		configPath  string
		envFiles    string
		encoding    string
		enablePDF   bool
		pdfFont     string
		manifest    bool
		writeEmpty  bool
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&dir, "dir", ".", "Directory scanned for HTML exam exports; reports are written next to them")
	flag.StringVar(&configPath, "config", os.Getenv("QUIZEXTRACT_CONFIG"), "Optional YAML or JSON config file")
	flag.StringVar(&envFiles, "env", "", "Comma-separated dotenv files loaded before reading QUIZEXTRACT_* variables")
	flag.StringVar(&encoding, "encoding", "", "Force an input charset (e.g. gbk) instead of detection")
	flag.BoolVar(&enablePDF, "pdf", false, "Also write a PDF rendering of each report")
	flag.StringVar(&pdfFont, "pdf.font", "", "TrueType font for PDF output; needed for non-Latin text")
	flag.BoolVar(&manifest, "manifest", false, "Write a JSON manifest sidecar next to each report")
	flag.BoolVar(&writeEmpty, "write-empty", false, "Write reports for files without questions")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(app.VersionString())
		return
	}

	if err := app.LoadEnvFiles(splitList(envFiles)...); err != nil {
		log.Error().Err(err).Msg("load env files")
		os.Exit(1)
	}

	cfg := app.Config{
		Dir:         dir,
		Encoding:    encoding,
		PDF:         enablePDF,
		PDFFontPath: pdfFont,
		Manifest:    manifest,
		WriteEmpty:  writeEmpty,
		Verbose:     verbose,
	}
	app.ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		stop()
		os.Exit(1)
	}
}

// run validates cfg and processes the directory. Per-file failures are only
// logged; an error here means the batch could not run at all.
func run(ctx context.Context, cfg app.Config) error {
	if err := app.ValidateConfig(cfg); err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	sum, err := a.Run(ctx)
	if err != nil {
		return err
	}
	ev := log.Info()
	if sum.Failed > 0 {
		ev = log.Warn()
	}
	ev.Int("found", sum.Found).Int("written", sum.Written).Int("empty", sum.Empty).
		Int("failed", sum.Failed).Msg("done")
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}
