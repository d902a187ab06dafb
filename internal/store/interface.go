package store

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/model"
)

// MessageStore persists canonical chat messages.
type MessageStore interface {
	// Import inserts messages for a single lead. With replace set, the lead's
	// existing messages are deleted first. Returns the lead's net row-count change.
	Import(ctx context.Context, messages []model.ChatMessage, replace bool) (int64, error)
	// ListByLead returns a lead's messages ordered by time. A nil day means full history.
	ListByLead(ctx context.Context, leadID string, day *time.Time) ([]model.ChatMessage, error)
	// Leads lists leads with messages on day, or with any messages when day is nil.
	Leads(ctx context.Context, day *time.Time) ([]string, error)
}

// TranscriptStore reads and records call transcripts.
type TranscriptStore interface {
	ListCompleted(ctx context.Context, leadID string, day time.Time) ([]model.ProcessedFile, error)
	Leads(ctx context.Context, day time.Time) ([]string, error)

	Start(ctx context.Context, leadID, filename string) (*model.ProcessedFile, error)
	Complete(ctx context.Context, id uint, text string) error
	Fail(ctx context.Context, id uint) error
}

// SummaryStore persists summary records.
type SummaryStore interface {
	// Save upserts on (lead_id, source_type, source_id, summary_date).
	Save(ctx context.Context, summary *model.ClientSummary) error
	// ListByDate returns all summaries for a day ordered by lead, then source type.
	ListByDate(ctx context.Context, day time.Time) ([]model.ClientSummary, error)
}
