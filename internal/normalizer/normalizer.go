// Package normalizer turns chat exports into canonical messages for one lead.
package normalizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

// Format is the shape of a chat export.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatText Format = "txt"
)

const unknownSender = "unknown"

// ErrEmptyExport is returned when an export parses cleanly but yields no messages.
var ErrEmptyExport = errors.New("export contains no messages")

// DetectFormat picks the export format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".txt":
		return FormatText, nil
	default:
		return FormatAuto, fmt.Errorf("cannot detect export format of %s: use json or txt", path)
	}
}

// ParseFile reads the export at path. now is the ingestion time used for
// missing or unparseable timestamps; its location is used for parsing.
func ParseFile(path string, format Format, leadID string, now time.Time) ([]model.ChatMessage, error) {
	if format == FormatAuto {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		return ParseJSON(f, leadID, now)
	case FormatText:
		return ParseText(f, leadID, now)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// finish orders messages by timestamp, keeping source order for ties.
func finish(msgs []model.ChatMessage) ([]model.ChatMessage, error) {
	if len(msgs) == 0 {
		return nil, ErrEmptyExport
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].MessageDate.Before(msgs[j].MessageDate)
	})
	return msgs, nil
}
