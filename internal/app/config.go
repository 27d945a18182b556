package app

import "github.com/hyperifyio/quizextract/internal/extract"

// Config holds runtime configuration for the application.
type Config struct {
	// Dir is scanned for HTML exports; reports are written next to them.
	Dir string

	// Encoding forces a charset for every input instead of detection.
	Encoding string

	// Markers overrides fields of extract.DefaultMarkers.
	Markers extract.Markers

	// Behavior
	WriteEmpty bool
	Manifest   bool
	Verbose    bool

	// PDF output
	PDF         bool
	PDFFontPath string
}
