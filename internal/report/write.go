package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IOError reports a failed write of an output artifact.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Write replaces dest with text. The content goes to a temporary file in the
// same directory first, so dest is either the old or the new version.
func Write(text, dest string) error {
	return writeAtomic(dest, func(w io.Writer) error {
		_, err := io.Copy(w, strings.NewReader(text))
		return err
	})
}

// OutputStems assigns each source a distinct output stem, in order; reports
// are named stem+".txt" and stem+".pdf". A source gets its name without the
// extension unless an earlier source already holds that stem, then its full
// name (exam.html gives exam.html.txt), then a numeric suffix. Stems are
// compared case-insensitively so they stay distinct on folding filesystems.
func OutputStems(sources []string) []string {
	taken := make(map[string]bool, len(sources))
	stems := make([]string, len(sources))
	for i, src := range sources {
		stem := strings.TrimSuffix(src, filepath.Ext(src))
		if taken[strings.ToLower(stem)] {
			stem = src
		}
		for n := 2; taken[strings.ToLower(stem)]; n++ {
			stem = fmt.Sprintf("%s-%d", src, n)
		}
		taken[strings.ToLower(stem)] = true
		stems[i] = stem
	}
	return stems
}

// IsReport reports whether the file at path starts with the header Format
// writes. A missing file is not a report.
func IsReport(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()
	head := make([]byte, len(reportHeader))
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return string(head) == reportHeader, nil
}

func writeAtomic(dest string, fill func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return &IOError{Path: dest, Op: "create", Err: err}
	}
	tmp := f.Name()
	fail := func(op string, err error) error {
		_ = f.Close()
		_ = os.Remove(tmp)
		return &IOError{Path: dest, Op: op, Err: err}
	}
	if err := fill(f); err != nil {
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Path: dest, Op: "close", Err: err}
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Path: dest, Op: "chmod", Err: err}
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Path: dest, Op: "rename", Err: err}
	}
	return nil
}
