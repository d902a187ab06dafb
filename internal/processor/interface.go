package processor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrTooLarge rejects recordings above the input size limit.
	ErrTooLarge = errors.New("recording exceeds size limit")
	// ErrNeedsConfiguration means the converted audio needs the async path
	// but no object storage is configured.
	ErrNeedsConfiguration = errors.New("object storage not configured for long recordings")
)

// audioExtensions are the inputs ProcessDir and the watcher pick up.
var audioExtensions = map[string]bool{
	".webm": true,
	".mp3":  true,
	".ogg":  true,
	".wav":  true,
	".mp4":  true,
	".m4a":  true,
	".flac": true,
}

// IsAudio reports whether path has a supported recording extension.
func IsAudio(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Result of one recording.
type Result struct {
	Output  string
	Text    string
	Skipped bool
}

// Stats summarizes a directory run.
type Stats struct {
	Total       int
	Transcribed int
	Skipped     int
	Failed      int
}

// Processor transcribes recordings to <base>_transcript.txt next to the input.
type Processor interface {
	Process(ctx context.Context, path string) (*Result, error)
	ProcessDir(ctx context.Context, dir string) (Stats, error)
}
