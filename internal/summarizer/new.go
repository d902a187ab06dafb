package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/llm"
	"github.com/nguyentantai21042004/lead-digest/internal/logger"
	"github.com/nguyentantai21042004/lead-digest/internal/store"
)

type implSummarizer struct {
	llm         llm.Client
	messages    store.MessageStore
	transcripts store.TranscriptStore
	summaries   store.SummaryStore
	outDir      string
	docx        bool
	logger      logger.Logger
	now         func() time.Time
}

// Deps groups the collaborators a Summarizer needs.
type Deps struct {
	LLM         llm.Client
	Messages    store.MessageStore
	Transcripts store.TranscriptStore
	Summaries   store.SummaryStore
}

// New creates a Summarizer writing markdown files under outDir, plus a docx
// copy of each summary when docx is set.
func New(deps Deps, outDir string, docx bool, log logger.Logger) Summarizer {
	return &implSummarizer{
		llm:         deps.LLM,
		messages:    deps.Messages,
		transcripts: deps.Transcripts,
		summaries:   deps.Summaries,
		outDir:      outDir,
		docx:        docx,
		logger:      log.With("component", "summarizer"),
		now:         time.Now,
	}
}
