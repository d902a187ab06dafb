package processor

import (
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/config"
	"github.com/nguyentantai21042004/lead-digest/internal/logger"
	"github.com/nguyentantai21042004/lead-digest/internal/speechkit"
	"github.com/nguyentantai21042004/lead-digest/internal/storage"
	"github.com/nguyentantai21042004/lead-digest/internal/store"
	"github.com/nguyentantai21042004/lead-digest/pkg/executor"
)

const (
	maxInputBytes  = 100 << 20
	inlineLimit    = 900_000
	convertTimeout = 300 * time.Second
	transcriptExt  = "_transcript.txt"
)

type implProcessor struct {
	cfg         *config.Config
	executor    executor.Executor
	stt         speechkit.Client
	uploader    storage.Uploader
	transcripts store.TranscriptStore
	logger      logger.Logger
}

// Deps groups the processor's collaborators. Uploader and Transcripts may be nil:
// without an uploader long recordings fail with ErrNeedsConfiguration, without
// a transcript store results are written to disk only.
type Deps struct {
	Executor    executor.Executor
	STT         speechkit.Client
	Uploader    storage.Uploader
	Transcripts store.TranscriptStore
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		executor:    deps.Executor,
		stt:         deps.STT,
		uploader:    deps.Uploader,
		transcripts: deps.Transcripts,
		logger:      log.With("component", "processor"),
	}
}
