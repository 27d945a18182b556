package app

import (
	"os"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from QUIZEXTRACT_*
// environment variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Dir == "" || cfg.Dir == dirDefault {
		if v := strings.TrimSpace(os.Getenv("QUIZEXTRACT_DIR")); v != "" {
			cfg.Dir = v
		}
	}
	if cfg.Encoding == "" {
		cfg.Encoding = strings.TrimSpace(os.Getenv("QUIZEXTRACT_ENCODING"))
	}
	if cfg.PDFFontPath == "" {
		cfg.PDFFontPath = strings.TrimSpace(os.Getenv("QUIZEXTRACT_PDF_FONT"))
	}

	// Booleans
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.PDF, "QUIZEXTRACT_PDF")
	setBool(&cfg.Manifest, "QUIZEXTRACT_MANIFEST")
	setBool(&cfg.WriteEmpty, "QUIZEXTRACT_WRITE_EMPTY")
	setBool(&cfg.Verbose, "QUIZEXTRACT_VERBOSE")
}
