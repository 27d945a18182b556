// Package document loads HTML export files and exposes their parsed tree
// through the Node interface.
package document

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/net/html"
)

// Document is one loaded HTML file.
type Document struct {
	Path     string
	Raw      []byte
	Encoding string
	Root     Node
}

// Options tunes decoding.
type Options struct {
	// Encoding forces a charset label (e.g. "gbk") instead of detection.
	Encoding string
}

// ParseError reports a file that could not be read or decoded as HTML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads path and parses it. Malformed markup is tolerated the way an
// HTML5 parser tolerates it; only unreadable or undecodable input fails.
func Parse(path string, opts Options) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return FromBytes(path, raw, opts)
}

// FromBytes parses already-loaded content; path is used for errors only.
func FromBytes(path string, raw []byte, opts Options) (*Document, error) {
	text, enc, err := decode(raw, opts.Encoding)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	root, err := html.Parse(bytes.NewReader(text))
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &Document{Path: path, Raw: raw, Encoding: enc, Root: Wrap(root)}, nil
}
