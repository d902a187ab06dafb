package processor

import (
	"context"
	"os"
)

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}

// removeUploaded deletes the bucket copy once recognition is over.
func (p *implProcessor) removeUploaded(ctx context.Context, key string) {
	// the run context may already be cancelled
	if err := p.uploader.Delete(context.WithoutCancel(ctx), key); err != nil {
		p.logger.Warn(ctx, "Failed to remove uploaded audio %s: %v", key, err)
	}
}
