package storage

import (
	"context"
	"regexp"
	"testing"

	"github.com/nguyentantai21042004/lead-digest/internal/config"
	"github.com/nguyentantai21042004/lead-digest/internal/logger"
)

func TestNewWithoutBucket(t *testing.T) {
	u, err := New(context.Background(), config.StorageConfig{}, logger.NewNop())
	if err != nil || u != nil {
		t.Fatalf("New() = %v, %v; want nil, nil", u, err)
	}
}

func TestPublicBase(t *testing.T) {
	tests := []struct {
		cfg  config.StorageConfig
		want string
	}{
		{config.StorageConfig{Bucket: "speech"}, "https://storage.googleapis.com/speech"},
		{config.StorageConfig{Bucket: "speech", PublicBaseURL: "https://cdn.example.com/"}, "https://cdn.example.com"},
	}
	for _, tt := range tests {
		if got := publicBase(tt.cfg); got != tt.want {
			t.Errorf("publicBase(%+v) = %q, want %q", tt.cfg, got, tt.want)
		}
	}
}

func TestObjectKey(t *testing.T) {
	re := regexp.MustCompile(`^recordings/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.ogg$`)
	key := objectKey("/tmp/convert/abc.OGG")
	if !re.MatchString(key) {
		t.Errorf("objectKey() = %q", key)
	}
	if objectKey("/tmp/a.ogg") == objectKey("/tmp/a.ogg") {
		t.Error("keys are not unique")
	}
}

func TestContentType(t *testing.T) {
	if got := contentType("recordings/x.ogg"); got != "audio/ogg" {
		t.Errorf("contentType(.ogg) = %q", got)
	}
	if got := contentType("recordings/x.bin"); got != "application/octet-stream" {
		t.Errorf("contentType(.bin) = %q", got)
	}
}
