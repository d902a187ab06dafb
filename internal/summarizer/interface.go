package summarizer

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

// Source selects which inputs SummarizeLeads reads.
type Source string

const (
	SourceCall Source = "call"
	SourceChat Source = "chat"
	SourceBoth Source = "both"
)

// AllLeads as the only lead id asks SummarizeLeads to discover leads with data.
const AllLeads = "all"

// Result describes one written summary.
type Result struct {
	LeadID     string
	SourceType model.SourceType
	SourceID   uint
	Path       string
	Text       string
}

// Options for a batch run.
type Options struct {
	Leads      []string
	Source     Source
	Day        time.Time
	AllHistory bool
}

// Summarizer turns call transcripts and chat histories into per-lead summaries.
type Summarizer interface {
	SummarizeCalls(ctx context.Context, leadID string, day time.Time) ([]Result, error)
	SummarizeChat(ctx context.Context, leadID string, day time.Time, allHistory bool) (*Result, error)
	SummarizeLeads(ctx context.Context, opts Options) ([]Result, error)
}

// ParseSource validates a source name from the command line.
func ParseSource(s string) (Source, bool) {
	switch Source(s) {
	case SourceCall, SourceChat, SourceBoth:
		return Source(s), true
	}
	return "", false
}
