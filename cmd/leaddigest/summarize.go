package main

import (
	"github.com/nguyentantai21042004/lead-digest/internal/llm"
	"github.com/nguyentantai21042004/lead-digest/internal/store"
	"github.com/nguyentantai21042004/lead-digest/internal/summarizer"
)

func cmdSummarize(args []string) int {
	fs, configPath := newFlagSet("summarize")
	leadID := fs.String("lead-id", "", `lead id or "all"`)
	source := fs.String("source", string(summarizer.SourceBoth), "call, chat or both")
	date := fs.String("date", "", "day to summarize, YYYY-MM-DD (default: today)")
	allHistory := fs.Bool("all-history", false, "summarize the whole chat history instead of one day")
	dbPassword := fs.String("db-password", "", "postgres password")
	apiKey := fs.String("api-key", "", "LLM API key")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *leadID == "" {
		return fail(`summarize requires -lead-id (a lead id or "all")`)
	}
	src, ok := summarizer.ParseSource(*source)
	if !ok {
		return fail("unknown source %q: use call, chat or both", *source)
	}
	day, err := parseDate(*date)
	if err != nil {
		return fail("%v", err)
	}

	a, err := setup("summarize", *configPath)
	if err != nil {
		return fail("config: %v", err)
	}
	defer a.log.Sync()
	override(&a.cfg.Database.Password, *dbPassword)
	override(&a.cfg.LLM.APIKey, *apiKey)
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

	s := summarizer.New(summarizer.Deps{
		LLM:         client,
		Messages:    store.NewMessageStore(gdb, a.log),
		Transcripts: store.NewTranscriptStore(gdb, a.log),
		Summaries:   store.NewSummaryStore(gdb, a.log),
	}, a.cfg.Paths.Summaries, a.cfg.Export.Docx, a.log)

	results, err := s.SummarizeLeads(ctx, summarizer.Options{
		Leads:      []string{*leadID},
		Source:     src,
		Day:        day,
		AllHistory: *allHistory,
	})
	if err != nil {
		a.log.Error(ctx, "Summaries finished with errors: %v", err)
		return 1
	}

	a.log.Info(ctx, "Done. Summaries written: %d", len(results))
	return 0
}
