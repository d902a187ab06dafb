package main

import (
	"errors"

	"github.com/nguyentantai21042004/lead-digest/internal/digest"
	"github.com/nguyentantai21042004/lead-digest/internal/llm"
	"github.com/nguyentantai21042004/lead-digest/internal/model"
	"github.com/nguyentantai21042004/lead-digest/internal/notify"
	"github.com/nguyentantai21042004/lead-digest/internal/store"
)

func cmdDigest(args []string) int {
	fs, configPath := newFlagSet("digest")
	date := fs.String("date", "", "day to digest, YYYY-MM-DD (default: today)")
	send := fs.Bool("send", false, "send the digest to Telegram")
	botToken := fs.String("bot-token", "", "Telegram bot token")
	chatID := fs.String("chat-id", "", "Telegram chat id")
	dbPassword := fs.String("db-password", "", "postgres password")
	apiKey := fs.String("api-key", "", "LLM API key")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	day, err := parseDate(*date)
	if err != nil {
		return fail("%v", err)
	}

	a, err := setup("digest", *configPath)
	if err != nil {
		return fail("config: %v", err)
	}
	defer a.log.Sync()
	override(&a.cfg.Database.Password, *dbPassword)
	override(&a.cfg.LLM.APIKey, *apiKey)
	override(&a.cfg.Telegram.BotToken, *botToken)
	override(&a.cfg.Telegram.ChatID, *chatID)
	if err := a.cfg.RequireLLM(); err != nil {
		return fail("%v", err)
	}

	ctx, stop := signalContext()
	defer stop()

	client, err := llm.New(ctx, a.cfg.LLM)
	if err != nil {
		a.log.Error(ctx, "LLM client: %v", err)
		return 1
	}

	gdb, err := a.openDB(ctx)
	if err != nil {
		a.log.Error(ctx, "Database: %v", err)
		return 1
	}
	defer a.closeDB(ctx, gdb)

	b := digest.New(client, store.NewSummaryStore(gdb, a.log), notify.NewTelegram(a.cfg.Telegram),
		a.cfg.Paths.Summaries, a.cfg.Export.Docx, a.log)

	res, err := b.Build(ctx, day, *send)
	if errors.Is(err, digest.ErrNoSummaries) {
		a.log.Warn(ctx, "No summaries for %s. Run summarize -date %s first", day.Format(model.DateLayout), day.Format(model.DateLayout))
		return 0
	}
	if err != nil {
		a.log.Error(ctx, "Digest: %v", err)
		return 1
	}

	a.log.Info(ctx, "Done. Combined files: %d, digest: %s", len(res.CombinedFiles), res.DigestPath)
	a.log.Info(ctx, "Digest:\n%s", head(res.Text, 600))
	return 0
}
