package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	uploadTimeout = 2 * time.Minute
	deleteTimeout = 30 * time.Second
	keyPrefix     = "recordings"
)

func (u *implUploader) Upload(ctx context.Context, localPath string) (Object, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return Object{}, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	key := objectKey(localPath)
	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType(key)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return Object{}, fmt.Errorf("write %s to bucket: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return Object{}, fmt.Errorf("close writer for %s: %w", key, err)
	}

	obj := Object{Key: key, URI: u.publicBase + "/" + key}
	u.logger.Info(ctx, "Uploaded %s to %s", filepath.Base(localPath), obj.URI)
	return obj, nil
}

func (u *implUploader) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	if err := u.client.Bucket(u.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s from bucket %s: %w", key, u.bucket, err)
	}
	return nil
}

func (u *implUploader) Close() error {
	return u.client.Close()
}

// objectKey is recordings/<yyyy>/<mm>/<dd>/<uuid><ext>.
func objectKey(localPath string) string {
	now := time.Now().UTC()
	return path.Join(keyPrefix, now.Format("2006/01/02"), uuid.NewString()+strings.ToLower(filepath.Ext(localPath)))
}

func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".ogg", ".opus":
		return "audio/ogg"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}
