package processor

import (
	"context"
	"fmt"
	"os"
)

// recognize routes converted audio by size: small files go inline to the
// sync endpoint, the rest through object storage and long-running recognition.
func (p *implProcessor) recognize(ctx context.Context, oggPath string) (string, error) {
	info, err := os.Stat(oggPath)
	if err != nil {
		return "", fmt.Errorf("stat converted audio: %w", err)
	}

	if info.Size() < inlineLimit {
		p.logger.Info(ctx, "Mode: synchronous (%dKB)", info.Size()/1024)
		audio, err := os.ReadFile(oggPath)
		if err != nil {
			return "", fmt.Errorf("read converted audio: %w", err)
		}
		return p.stt.Recognize(ctx, audio)
	}

	if p.uploader == nil {
		return "", fmt.Errorf("%w: converted audio is %dKB", ErrNeedsConfiguration, info.Size()/1024)
	}

	p.logger.Info(ctx, "Mode: asynchronous (%dKB)", info.Size()/1024)
	obj, err := p.uploader.Upload(ctx, oggPath)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer p.removeUploaded(ctx, obj.Key)

	opID, err := p.stt.Submit(ctx, obj.URI)
	if err != nil {
		return "", err
	}
	return p.stt.Wait(ctx, opID)
}
