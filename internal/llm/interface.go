// Package llm talks to the chat-completion providers used for summaries and digests.
package llm

import (
	"context"
	"time"
)

const (
	// Temperature keeps summaries close to deterministic.
	Temperature = 0.2
	// RequestTimeout bounds every completion request.
	RequestTimeout = 120 * time.Second
)

// Request is one system+user exchange.
type Request struct {
	System    string
	User      string
	MaxTokens int
}

// Client issues a single non-streaming completion. Implementations never retry.
type Client interface {
	Complete(ctx context.Context, req Request) (Completion, error)
	Model() string
}
