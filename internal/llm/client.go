package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM providers.
type Client interface {
	// GenerateGrounded generates content with the provider's web-search tool
	// enabled, returning the raw text plus the tool-invocation trace.
	GenerateGrounded(ctx context.Context, systemInstruction, prompt string) (*Result, error)
	// ModelName returns the provider model used for grounded generation.
	ModelName() string
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a new LLM client based on configuration. The client is
// constructed once at startup and injected into the pipeline; nothing in this
// package keeps module-level state.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
