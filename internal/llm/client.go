package llm

import (
	"context"
	"fmt"
)

// Client is the single narrow interface every pipeline stage uses to reach
// the capability provider.
type Client interface {
	// GenerateContent generates free-text content using the specified model tier.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates JSON content using the specified model tier.
	// The returned string is the raw JSON payload with any markdown code
	// fencing stripped.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model name for a tier.
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}
