package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YeswanthC7/keepkind/internal/repository"
)

const probeHeadSize = 5

type EmbeddingService struct {
	sourceRepo *repository.SourceRepository
	chunkRepo  *repository.ChunkRepository
	embedder   Embedder
}

func NewEmbeddingService(
	sourceRepo *repository.SourceRepository,
	chunkRepo *repository.ChunkRepository,
	embedder Embedder,
) *EmbeddingService {
	return &EmbeddingService{
		sourceRepo: sourceRepo,
		chunkRepo:  chunkRepo,
		embedder:   embedder,
	}
}

type EmbedResult struct {
	SourceID       uint `json:"sourceId"`
	ChunksEmbedded int  `json:"chunksEmbedded"`
}

// EmbedSource embeds the source's chunks one request at a time. Without all,
// chunks that already have an embedding are left alone. The first gateway
// failure aborts; chunks embedded before it keep their vectors.
func (s *EmbeddingService) EmbedSource(ctx context.Context, sourceID uint, all bool) (*EmbedResult, error) {
	source, err := s.sourceRepo.GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrSourceNotFound
	}

	chunks, err := s.chunkRepo.ListBySource(ctx, sourceID, !all)
	if err != nil {
		return nil, err
	}

	embedded := 0
	for _, chunk := range chunks {
		vec, err := s.embedder.EmbedOne(ctx, chunk.Content)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d failed: %w", chunk.ID, err)
		}
		if err := s.chunkRepo.UpdateEmbedding(ctx, chunk.ID, vec); err != nil {
			return nil, err
		}
		embedded++
	}

	slog.InfoContext(ctx, "source embedded",
		"source_id", sourceID, "chunks", embedded, "model", s.embedder.EmbeddingModel())

	return &EmbedResult{SourceID: sourceID, ChunksEmbedded: embedded}, nil
}

type EmbedProbe struct {
	Model string    `json:"model"`
	Dims  int       `json:"dims"`
	Head  []float32 `json:"head"`
}

// Probe embeds a sample text and reports the vector's size and first values.
func (s *EmbeddingService) Probe(ctx context.Context, text string) (*EmbedProbe, error) {
	if strings.TrimSpace(text) == "" {
		return nil, invalidInput("text is required")
	}
	vec, err := s.embedder.EmbedOne(ctx, text)
	if err != nil {
		return nil, err
	}
	head := vec
	if len(head) > probeHeadSize {
		head = head[:probeHeadSize]
	}
	return &EmbedProbe{
		Model: s.embedder.EmbeddingModel(),
		Dims:  len(vec),
		Head:  head,
	}, nil
}
