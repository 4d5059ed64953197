package app

import (
	"context"

	"github.com/YeswanthC7/keepkind/internal/model"
)

// Embedder turns one text into a vector.
type Embedder interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	EmbeddingModel() string
}

// Generator answers a system/user message pair.
type Generator interface {
	Chat(ctx context.Context, system, user string) (string, error)
	ChatModel() string
}

// ReceiptEventPublisher receives receipt lifecycle events after commit.
type ReceiptEventPublisher interface {
	Publish(ctx context.Context, event model.ReceiptEvent) error
}
