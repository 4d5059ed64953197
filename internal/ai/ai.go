// Package ai talks to the embedding and chat models.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/oops"

	"github.com/YeswanthC7/keepkind/internal/config"
)

// ErrUpstreamProtocol means a model service answered with a response that is
// missing the fields the caller needs.
var ErrUpstreamProtocol = errors.New("upstream protocol error")

// Client is implemented by every provider.
type Client interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	Chat(ctx context.Context, system, user string) (string, error)
	ChatModel() string
	EmbeddingModel() string
}

// New builds the client for the configured provider.
func New(cfg config.LLMConfig, timeout time.Duration) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return NewOllamaClient(cfg.BaseURL, cfg.ChatModel, cfg.EmbeddingModel, timeout), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.BaseURL, cfg.APIKey, cfg.ChatModel, cfg.EmbeddingModel, timeout)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

func protocolError(provider, model, endpoint, format string, args ...any) error {
	return oops.
		Code("upstream_protocol").
		With("provider", provider, "model", model, "endpoint", endpoint).
		Wrapf(ErrUpstreamProtocol, format, args...)
}
