package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/lead-digest/internal/speechkit"
)

// convert re-encodes input to mono 16 kHz OGG Opus in the temp directory and
// returns the temp file path. The caller removes it.
func (p *implProcessor) convert(ctx context.Context, input string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	out := filepath.Join(p.cfg.Paths.Temp, uuid.NewString()+".ogg")

	ctx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	args := []string{
		"-i", input,
		"-vn",
		"-acodec", "libopus",
		"-b:a", p.cfg.FFmpeg.Bitrate,
		"-ac", "1",
		"-ar", fmt.Sprint(speechkit.SampleRate),
		out,
		"-y",
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		p.cleanupTempFile(ctx, out)
		return "", fmt.Errorf("ffmpeg convert: %w", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		return "", fmt.Errorf("stat converted audio: %w", err)
	}
	p.logger.Info(ctx, "Converted %s -> %dKB OGG", filepath.Base(input), info.Size()/1024)
	return out, nil
}
