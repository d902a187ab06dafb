package model

import "time"

// SourceType names what a summary was produced from.
type SourceType string

const (
	SourceCall SourceType = "call"
	SourceChat SourceType = "chat"
)

// Transcript record statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ChatMessage is the canonical message produced by the export normalizer.
// Rows are written once on import and never updated.
type ChatMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	LeadID      string    `gorm:"column:lead_id;size:64;not null;index:idx_chat_messages_lead_date,priority:1" json:"lead_id"`
	ChatTitle   string    `gorm:"column:chat_title" json:"chat_title"`
	Sender      string    `gorm:"column:sender" json:"sender"`
	MessageText string    `gorm:"column:message_text" json:"text"`
	MessageDate time.Time `gorm:"column:message_date;not null;index:idx_chat_messages_lead_date,priority:2" json:"date"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

// ProcessedFile is a transcript record. Only completed rows with text are summarized.
type ProcessedFile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	LeadID         string    `gorm:"column:lead_id;size:64;index" json:"lead_id"`
	Filename       string    `gorm:"column:filename;not null" json:"filename"`
	TranscriptText *string   `gorm:"column:transcript_text" json:"transcript_text,omitempty"`
	Status         string    `gorm:"column:status;size:16;not null;default:pending" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ProcessedFile) TableName() string { return "processed_files" }

// ClientSummary is one LLM synopsis of one source for one lead on one date.
type ClientSummary struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	LeadID      string     `gorm:"column:lead_id;size:64;not null;uniqueIndex:idx_client_summaries_key,priority:1" json:"lead_id"`
	SourceType  SourceType `gorm:"column:source_type;size:8;not null;uniqueIndex:idx_client_summaries_key,priority:2" json:"source_type"`
	SourceID    uint       `gorm:"column:source_id;not null;uniqueIndex:idx_client_summaries_key,priority:3" json:"source_id"`
	SummaryText string     `gorm:"column:summary_text" json:"summary_text"`
	SummaryDate time.Time  `gorm:"column:summary_date;not null;uniqueIndex:idx_client_summaries_key,priority:4" json:"summary_date"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (ClientSummary) TableName() string { return "client_summaries" }
