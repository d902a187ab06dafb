// Package digest folds a day's summaries into per-lead documents and one short digest.
package digest

import (
	"context"
	"errors"
	"time"
)

// ErrNoSummaries means the day has nothing to digest. No LLM call is made.
var ErrNoSummaries = errors.New("no summaries for date")

// Result describes the files written for a day.
type Result struct {
	Leads         []string
	CombinedFiles []string
	DigestPath    string
	DocxPath      string
	Text          string
	Sent          bool
}

// Builder produces the daily digest.
type Builder interface {
	// Build writes combined files and the digest for day. When send is set the
	// digest is forwarded to the notifier; delivery failures are logged only.
	Build(ctx context.Context, day time.Time, send bool) (*Result, error)
}
