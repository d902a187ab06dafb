package main

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/lead-digest/internal/processor"
	"github.com/nguyentantai21042004/lead-digest/internal/speechkit"
	"github.com/nguyentantai21042004/lead-digest/internal/storage"
	"github.com/nguyentantai21042004/lead-digest/internal/store"
	"github.com/nguyentantai21042004/lead-digest/pkg/executor"
)

func cmdTranscribe(args []string) int {
	fs, configPath := newFlagSet("transcribe")
	key := fs.String("key", "", "SpeechKit API key")
	file := fs.String("file", "", "single recording")
	dir := fs.String("dir", "", "directory of recordings")
	test := fs.Bool("test", false, "check the SpeechKit key and exit")
	noDB := fs.Bool("no-db", false, "write transcripts to disk only")
	dbPassword := fs.String("db-password", "", "postgres password")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if !*test && *file == "" && *dir == "" {
		fs.Usage()
		return 1
	}

	a, err := setup("transcribe", *configPath)
	if err != nil {
		return fail("config: %v", err)
	}
	defer a.log.Sync()
	override(&a.cfg.SpeechKit.APIKey, *key)
	override(&a.cfg.Database.Password, *dbPassword)
	if err := a.cfg.RequireSpeechKit(); err != nil {
		return fail("%v", err)
	}

	ctx, stop := signalContext()
	defer stop()

	stt := speechkit.New(a.cfg.SpeechKit, a.log)
	if *test {
		return checkKey(ctx, a, stt)
	}

	proc, cleanup, err := a.newProcessor(ctx, stt, *noDB)
	if err != nil {
		a.log.Error(ctx, "%v", err)
		return 1
	}
	defer cleanup()

	if *file != "" {
		if err := a.processFile(ctx, proc, *file); err != nil {
			a.log.Error(ctx, "Transcription failed: %v", err)
			return 1
		}
		return 0
	}

	if _, err := proc.ProcessDir(ctx, *dir); err != nil {
		a.log.Error(ctx, "%v", err)
		return 1
	}
	return 0
}

// processFile runs a single recording. An oversized file is reported and
// skipped, not failed.
func (a *app) processFile(ctx context.Context, proc processor.Processor, path string) error {
	_, err := proc.Process(ctx, path)
	if errors.Is(err, processor.ErrTooLarge) {
		a.log.Warn(ctx, "Skipped: %v", err)
		return nil
	}
	return err
}

func checkKey(ctx context.Context, a *app, stt speechkit.Client) int {
	a.log.Info(ctx, "Testing SpeechKit API...")
	check, err := stt.CheckKey(ctx)
	if err != nil {
		a.log.Error(ctx, "SpeechKit unreachable: %v", err)
		return 1
	}

	switch {
	case check.Valid:
		a.log.Info(ctx, "API answered %d (expected for an empty payload): key works", check.Status)
		return 0
	case check.Status == 401:
		a.log.Error(ctx, "401: invalid API key")
	default:
		a.log.Error(ctx, "HTTP %d: %s", check.Status, check.Body)
	}
	return 1
}

// newProcessor wires the runner. The returned cleanup closes what was opened.
func (a *app) newProcessor(ctx context.Context, stt speechkit.Client, noDB bool) (processor.Processor, func(), error) {
	exec := executor.New()
	if _, err := exec.LookPath(a.cfg.FFmpeg.BinaryPath); err != nil {
		return nil, nil, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := processor.Deps{Executor: exec, STT: stt}

	uploader, err := storage.New(ctx, a.cfg.Storage, a.log)
	if err != nil {
		return nil, nil, err
	}
	if uploader != nil {
		deps.Uploader = uploader
		closers = append(closers, func() { _ = uploader.Close() })
	} else {
		a.log.Warn(ctx, "No storage bucket configured: recordings that convert to 900KB or more will fail")
	}

	if !noDB {
		gdb, err := a.openDB(ctx)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { a.closeDB(ctx, gdb) })
		deps.Transcripts = store.NewTranscriptStore(gdb, a.log)
	}

	return processor.New(a.cfg, deps, a.log), cleanup, nil
}
