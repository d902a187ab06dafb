// Package storage hands converted recordings to the asynchronous recognizer
// through a Cloud Storage bucket.
package storage

import "context"

// Object is an uploaded file.
type Object struct {
	Key string
	URI string
}

// Uploader puts local files into the bucket and removes them afterwards.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (Object, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
