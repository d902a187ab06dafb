package digest

import (
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/llm"
	"github.com/nguyentantai21042004/lead-digest/internal/logger"
	"github.com/nguyentantai21042004/lead-digest/internal/notify"
	"github.com/nguyentantai21042004/lead-digest/internal/store"
)

type implBuilder struct {
	llm       llm.Client
	summaries store.SummaryStore
	notifier  notify.Notifier
	outDir    string
	docx      bool
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Builder. notifier may be nil when forwarding is never requested.
func New(client llm.Client, summaries store.SummaryStore, notifier notify.Notifier, outDir string, docx bool, log logger.Logger) Builder {
	return &implBuilder{
		llm:       client,
		summaries: summaries,
		notifier:  notifier,
		outDir:    outDir,
		docx:      docx,
		logger:    log.With("component", "digest"),
		now:       time.Now,
	}
}
