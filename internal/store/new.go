package store

import (
	"gorm.io/gorm"

	"github.com/nguyentantai21042004/lead-digest/internal/logger"
)

// importBatchSize bounds the rows sent per INSERT.
const importBatchSize = 500

type implMessageStore struct {
	db     *gorm.DB
	logger logger.Logger
}

type implTranscriptStore struct {
	db     *gorm.DB
	logger logger.Logger
}

type implSummaryStore struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewMessageStore(db *gorm.DB, log logger.Logger) MessageStore {
	return &implMessageStore{db: db, logger: log.With("store", "messages")}
}

func NewTranscriptStore(db *gorm.DB, log logger.Logger) TranscriptStore {
	return &implTranscriptStore{db: db, logger: log.With("store", "transcripts")}
}

func NewSummaryStore(db *gorm.DB, log logger.Logger) SummaryStore {
	return &implSummaryStore{db: db, logger: log.With("store", "summaries")}
}
