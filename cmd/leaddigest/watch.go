package main

import (
	"context"
	"errors"
	"os"

	"github.com/nguyentantai21042004/lead-digest/internal/processor"
	"github.com/nguyentantai21042004/lead-digest/internal/speechkit"
	"github.com/nguyentantai21042004/lead-digest/internal/watcher"
)

func cmdWatch(args []string) int {
	fs, configPath := newFlagSet("watch")
	dir := fs.String("dir", "", "directory to watch (default: paths.recordings)")
	key := fs.String("key", "", "SpeechKit API key")
	noDB := fs.Bool("no-db", false, "write transcripts to disk only")
	dbPassword := fs.String("db-password", "", "postgres password")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	a, err := setup("watch", *configPath)
	if err != nil {
		return fail("config: %v", err)
	}
	defer a.log.Sync()
	override(&a.cfg.Paths.Recordings, *dir)
	override(&a.cfg.SpeechKit.APIKey, *key)
	override(&a.cfg.Database.Password, *dbPassword)
	if a.cfg.Paths.Recordings == "" {
		return fail("watch requires -dir or paths.recordings")
	}
	if err := a.cfg.RequireSpeechKit(); err != nil {
		return fail("%v", err)
	}
	if err := os.MkdirAll(a.cfg.Paths.Recordings, 0755); err != nil {
		return fail("create %s: %v", a.cfg.Paths.Recordings, err)
	}

	ctx, stop := signalContext()
	defer stop()

	proc, cleanup, err := a.newProcessor(ctx, speechkit.New(a.cfg.SpeechKit, a.log), *noDB)
	if err != nil {
		a.log.Error(ctx, "%v", err)
		return 1
	}
	defer cleanup()

	handle := func(ctx context.Context, path string) error {
		return a.processFile(ctx, proc, path)
	}
	w, err := watcher.New(a.cfg.Paths.Recordings, processor.IsAudio, handle, a.log)
	if err != nil {
		a.log.Error(ctx, "Watcher: %v", err)
		return 1
	}
	defer w.Stop()

	// recordings that arrived while nothing was watching; the watch is already
	// registered so files created during the sweep queue up for Start
	if _, err := proc.ProcessDir(ctx, a.cfg.Paths.Recordings); err != nil {
		a.log.Error(ctx, "%v", err)
		return 1
	}

	a.log.Info(ctx, "Watching %s. Press Ctrl+C to stop", a.cfg.Paths.Recordings)
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.log.Error(ctx, "Watcher: %v", err)
		return 1
	}
	a.log.Info(ctx, "Stopped")
	return 0
}
