package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions lists the file extensions treated as HTML exports.
var Extensions = []string{".html", ".htm"}

// Scan returns the HTML files directly inside dir, sorted lexically.
// Sub-directories are not descended. An empty result is not an error.
func Scan(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		// Symlinks are kept; a link to a directory fails later at read time.
		if !e.Type().IsRegular() && e.Type()&os.ModeSymlink == 0 {
			continue
		}
		if !IsHTML(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// IsHTML reports whether name carries one of Extensions, ignoring case.
func IsHTML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
