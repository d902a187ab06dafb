// Package speechkit is a client for the Yandex SpeechKit recognition API.
package speechkit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// SampleRate of the converted audio. Both recognition modes expect it.
	SampleRate = 16000

	syncTimeout   = 30 * time.Second
	submitTimeout = 30 * time.Second
	pollTimeout   = 15 * time.Second
	checkTimeout  = 10 * time.Second

	defaultPollInterval = 10 * time.Second
	defaultPollAttempts = 120
)

var (
	// ErrPollTimeout means the operation was still running after the last poll.
	ErrPollTimeout = errors.New("speechkit: recognition did not finish in time")
	// ErrRecognitionFailed means the operation finished with an error.
	ErrRecognitionFailed = errors.New("speechkit: recognition failed")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("speechkit: status %d: %s", e.Status, e.Body)
}

// KeyCheck is the outcome of a connectivity probe.
type KeyCheck struct {
	Status int
	Valid  bool
	Body   string
}

// Client covers both recognition modes.
type Client interface {
	// Recognize transcribes short OGG Opus audio in one request.
	Recognize(ctx context.Context, audio []byte) (string, error)
	// Submit starts long-running recognition of audio at uri and returns the operation id.
	Submit(ctx context.Context, uri string) (string, error)
	// Wait polls the operation until it finishes or the attempts run out.
	Wait(ctx context.Context, operationID string) (string, error)
	// CheckKey sends a tiny invalid payload to tell a working key from a rejected one.
	CheckKey(ctx context.Context) (KeyCheck, error)
}
