// Package notify forwards finished digests to a chat.
package notify

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when the bot token or chat id is missing.
var ErrNotConfigured = errors.New("telegram not configured")

// Notifier delivers a text message.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
