package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/quizextract/internal/document"
	"github.com/hyperifyio/quizextract/internal/extract"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Dir        string `yaml:"dir" json:"dir"`
	Encoding   string `yaml:"encoding" json:"encoding"`
	WriteEmpty bool   `yaml:"writeEmpty" json:"writeEmpty"`
	Manifest   bool   `yaml:"manifest" json:"manifest"`
	Verbose    bool   `yaml:"verbose" json:"verbose"`

	PDF struct {
		Enable bool   `yaml:"enable" json:"enable"`
		Font   string `yaml:"font" json:"font"`
	} `yaml:"pdf" json:"pdf"`

	// Markers overrides the export markup contract field by field.
	Markers extract.Markers `yaml:"markers" json:"markers"`
}

const dirDefault = "."

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset/zero in cfg, so explicit flags and env win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.Dir == "" || cfg.Dir == dirDefault) && fc.Dir != "" {
		cfg.Dir = fc.Dir
	}
	if cfg.Encoding == "" && fc.Encoding != "" {
		cfg.Encoding = fc.Encoding
	}
	if !cfg.WriteEmpty && fc.WriteEmpty {
		cfg.WriteEmpty = true
	}
	if !cfg.Manifest && fc.Manifest {
		cfg.Manifest = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if !cfg.PDF && fc.PDF.Enable {
		cfg.PDF = true
	}
	if cfg.PDFFontPath == "" && fc.PDF.Font != "" {
		cfg.PDFFontPath = fc.PDF.Font
	}
	cfg.Markers = fc.Markers.Merge(cfg.Markers)
}

// ValidateConfig performs minimal validation of settings.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Dir) == "" {
		return errors.New("config: dir is required")
	}
	if err := document.CheckEncoding(cfg.Encoding); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := extract.DefaultMarkers.Merge(cfg.Markers).Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.PDFFontPath != "" {
		if _, err := os.Stat(cfg.PDFFontPath); err != nil {
			return fmt.Errorf("config: pdf font: %w", err)
		}
	}
	return nil
}
