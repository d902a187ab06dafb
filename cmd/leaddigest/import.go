package main

import (
	"errors"
	"os"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/lead-digest/internal/normalizer"
	"github.com/nguyentantai21042004/lead-digest/internal/store"
)

func cmdImport(args []string) int {
	fs, configPath := newFlagSet("import")
	leadID := fs.String("lead-id", "", "lead id, e.g. 101")
	file := fs.String("file", "", "chat export (.json or .txt)")
	format := fs.String("format", "", "export format: json or txt (default: from extension)")
	replace := fs.Bool("clear", false, "delete the lead's stored messages first")
	dbPassword := fs.String("db-password", "", "postgres password")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *leadID == "" || *file == "" {
		return fail("import requires -lead-id and -file")
	}
	if _, err := os.Stat(*file); err != nil {
		return fail("file not found: %s", *file)
	}
	f := normalizer.Format(*format)
	if f != normalizer.FormatAuto && f != normalizer.FormatJSON && f != normalizer.FormatText {
		return fail("unknown format %q: use json or txt", *format)
	}

	a, err := setup("import", *configPath)
	if err != nil {
		return fail("config: %v", err)
	}
	defer a.log.Sync()
	override(&a.cfg.Database.Password, *dbPassword)

	ctx, stop := signalContext()
	defer stop()

	a.log.Info(ctx, "Importing chat for LEAD-%s from %s", *leadID, *file)

	msgs, err := normalizer.ParseFile(*file, f, *leadID, time.Now())
	if errors.Is(err, normalizer.ErrEmptyExport) {
		a.log.Warn(ctx, "Export is empty or its format was not recognized: %s", *file)
		return 1
	}
	if err != nil {
		a.log.Error(ctx, "Parse export: %v", err)
		return 1
	}

	first := msgs[0]
	a.log.Info(ctx, "Read %d messages. First: [%s] %s: %s", len(msgs),
		first.MessageDate.Format("2006-01-02 15:04:05"), first.Sender, head(first.MessageText, 100))

	gdb, err := a.openDB(ctx)
	if err != nil {
		a.log.Error(ctx, "Database: %v", err)
		return 1
	}
	defer a.closeDB(ctx, gdb)

	imported, err := store.NewMessageStore(gdb, a.log).Import(ctx, msgs, *replace)
	if err != nil {
		a.log.Error(ctx, "Import: %v", err)
		return 1
	}

	a.log.Info(ctx, "Imported %d messages for LEAD-%s", imported, *leadID)
	return 0
}

func head(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
