package app

import (
	"context"
	"log/slog"

	"github.com/YeswanthC7/keepkind/internal/cache"
	"github.com/YeswanthC7/keepkind/internal/model"
	"github.com/YeswanthC7/keepkind/internal/repository"
)

// Retriever embeds a question and fetches the item's nearest chunks. The
// query embedding cache is optional.
type Retriever struct {
	chunkRepo *repository.ChunkRepository
	embedder  Embedder
	cache     *cache.EmbeddingCache
}

func NewRetriever(chunkRepo *repository.ChunkRepository, embedder Embedder, embeddingCache *cache.EmbeddingCache) *Retriever {
	return &Retriever{
		chunkRepo: chunkRepo,
		embedder:  embedder,
		cache:     embeddingCache,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, itemID uint, question string, k int) ([]model.ScoredChunk, error) {
	vec, err := r.embedQuery(ctx, question)
	if err != nil {
		return nil, err
	}
	return r.chunkRepo.Nearest(ctx, itemID, vec, k)
}

func (r *Retriever) embedQuery(ctx context.Context, text string) ([]float32, error) {
	embedModel := r.embedder.EmbeddingModel()
	if r.cache != nil {
		if vec, hit, err := r.cache.Get(ctx, embedModel, text); err == nil && hit {
			return vec, nil
		} else if err != nil {
			slog.WarnContext(ctx, "embedding cache read failed", "error", err)
		}
	}

	vec, err := r.embedder.EmbedOne(ctx, text)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, embedModel, text, vec); err != nil {
			slog.WarnContext(ctx, "embedding cache write failed", "error", err)
		}
	}
	return vec, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
