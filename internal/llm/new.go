package llm

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lead-digest/internal/config"
)

// New builds the client selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "", "glm":
		return NewGLM(cfg.Endpoint, cfg.APIKey, cfg.Model), nil
	case "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
