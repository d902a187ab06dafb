package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/logger"
	"github.com/nguyentantai21042004/lead-digest/internal/processor"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2026-02-20", want: "2026-02-20"},
		{in: "", want: time.Now().Format("2006-01-02")},
		{in: "20.02.2026", wantErr: true},
		{in: "2026-02-30", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got.Format("2006-01-02") != tt.want {
			t.Errorf("parseDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
		if err == nil && (got.Hour() != 0 || got.Minute() != 0) {
			t.Errorf("parseDate(%q) not at midnight: %v", tt.in, got)
		}
	}
}

func TestHead(t *testing.T) {
	if got := head("привет мир", 6); got != "привет..." {
		t.Errorf("head() = %q", got)
	}
	if got := head("ok", 6); got != "ok" {
		t.Errorf("head() = %q", got)
	}
}

func TestOverride(t *testing.T) {
	v := "from-config"
	override(&v, "")
	if v != "from-config" {
		t.Errorf("empty flag replaced value: %q", v)
	}
	override(&v, "from-flag")
	if v != "from-flag" {
		t.Errorf("override() = %q", v)
	}
}

type stubProcessor struct {
	err error
}

func (s stubProcessor) Process(context.Context, string) (*processor.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &processor.Result{}, nil
}

func (s stubProcessor) ProcessDir(context.Context, string) (processor.Stats, error) {
	return processor.Stats{}, nil
}

func TestProcessFile(t *testing.T) {
	a := &app{log: logger.NewNop()}
	boom := errors.New("ffmpeg convert: exit status 1")
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "transcribed"},
		{name: "oversized is skipped", err: fmt.Errorf("%w: huge.mp4 is 120MB", processor.ErrTooLarge)},
		{name: "failure", err: boom, wantErr: boom},
		{name: "needs configuration", err: processor.ErrNeedsConfiguration, wantErr: processor.ErrNeedsConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.processFile(context.Background(), stubProcessor{err: tt.err}, "x.webm")
			if !errors.Is(err, tt.wantErr) || (err == nil) != (tt.wantErr == nil) {
				t.Errorf("processFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
