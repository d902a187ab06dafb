package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

var leadPattern = regexp.MustCompile(`LEAD-(\d+)`)

// leadFromFilename extracts 101 from LEAD-101_2026-02-20_14-30.webm.
func leadFromFilename(path string) string {
	if m := leadPattern.FindStringSubmatch(filepath.Base(path)); m != nil {
		return m[1]
	}
	return ""
}

// OutputPath is where the transcript of path is written.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + transcriptExt
}

// Process transcribes one recording. An existing transcript short-circuits
// everything, so reruns over a directory are cheap. Once started, a recording
// runs to completion even if ctx is cancelled; convertTimeout and the SpeechKit
// deadlines bound it instead.
func (p *implProcessor) Process(ctx context.Context, path string) (*Result, error) {
	startTime := time.Now()
	output := OutputPath(path)

	if _, err := os.Stat(output); err == nil {
		p.logger.Info(ctx, "Already processed: %s", output)
		return &Result{Output: output, Skipped: true}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	p.logger.Info(ctx, "File: %s (%dMB)", filepath.Base(path), info.Size()>>20)
	if info.Size() > maxInputBytes {
		return nil, fmt.Errorf("%w: %s is %dMB", ErrTooLarge, filepath.Base(path), info.Size()>>20)
	}

	record := p.startRecord(ctx, path)

	text, err := p.transcribe(ctx, path)
	if err != nil {
		p.failRecord(ctx, record)
		return nil, err
	}

	if text == "" {
		p.logger.Warn(ctx, "Empty transcription for %s", filepath.Base(path))
	}
	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		p.failRecord(ctx, record)
		return nil, fmt.Errorf("write transcript: %w", err)
	}
	p.completeRecord(ctx, record, text)

	p.logger.Info(ctx, "Saved: %s (%s)", output, time.Since(startTime).Round(time.Second))
	p.logger.Info(ctx, "Preview: %s", preview(text, 200))
	return &Result{Output: output, Text: text}, nil
}

func (p *implProcessor) transcribe(ctx context.Context, path string) (string, error) {
	ogg, err := p.convert(ctx, path)
	if err != nil {
		return "", err
	}
	defer p.cleanupTempFile(ctx, ogg)

	return p.recognize(ctx, ogg)
}

// ProcessDir runs Process over every recording in dir, one at a time.
// Failures are counted and logged, never returned.
func (p *implProcessor) ProcessDir(ctx context.Context, dir string) (Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Stats{}, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && IsAudio(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	stats := Stats{Total: len(files)}
	p.logger.Info(ctx, "Found %d recordings in %s", len(files), dir)

	for i, f := range files {
		if ctx.Err() != nil {
			p.logger.Warn(ctx, "Stopped before %s", filepath.Base(f))
			break
		}

		p.logger.Info(ctx, "[%d/%d] %s", i+1, len(files), filepath.Base(f))
		res, err := p.Process(ctx, f)
		switch {
		case errors.Is(err, ErrNeedsConfiguration):
			p.logger.Error(ctx, "Needs configuration: %v", err)
			stats.Failed++
		case errors.Is(err, ErrTooLarge):
			p.logger.Warn(ctx, "Skipped: %v", err)
			stats.Skipped++
		case err != nil:
			p.logger.Error(ctx, "Failed %s: %v", filepath.Base(f), err)
			stats.Failed++
		case res.Skipped:
			stats.Skipped++
		default:
			stats.Transcribed++
		}
	}

	p.logger.Info(ctx, "Done: %d transcribed, %d skipped, %d failed", stats.Transcribed, stats.Skipped, stats.Failed)
	return stats, nil
}

// startRecord opens a pending transcript record for recordings named after a lead.
func (p *implProcessor) startRecord(ctx context.Context, path string) *model.ProcessedFile {
	leadID := leadFromFilename(path)
	if leadID == "" || p.transcripts == nil {
		return nil
	}
	rec, err := p.transcripts.Start(ctx, leadID, filepath.Base(path))
	if err != nil {
		p.logger.Warn(ctx, "Transcript record not created: %v", err)
		return nil
	}
	return rec
}

func (p *implProcessor) completeRecord(ctx context.Context, rec *model.ProcessedFile, text string) {
	if rec == nil {
		return
	}
	if err := p.transcripts.Complete(ctx, rec.ID, text); err != nil {
		p.logger.Warn(ctx, "Transcript record %d not completed: %v", rec.ID, err)
	}
}

func (p *implProcessor) failRecord(ctx context.Context, rec *model.ProcessedFile) {
	if rec == nil {
		return
	}
	if err := p.transcripts.Fail(context.WithoutCancel(ctx), rec.ID); err != nil {
		p.logger.Warn(ctx, "Transcript record %d not marked failed: %v", rec.ID, err)
	}
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
