// Package document writes generated summaries to disk.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteMarkdown writes header and body to path, creating parent directories.
func WriteMarkdown(path, header, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(header+body), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DatedDir is <root>/<YYYY-MM-DD>.
func DatedDir(root, date string) string {
	return filepath.Join(root, date)
}

// SwapExt replaces the extension of path.
func SwapExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
