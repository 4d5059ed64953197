package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/YeswanthC7/keepkind/internal/model"
)

type ChunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// ListBySource returns a source's chunks in index order. With onlyUnembedded
// set, chunks that already carry an embedding are skipped.
func (r *ChunkRepository) ListBySource(ctx context.Context, sourceID uint, onlyUnembedded bool) ([]model.Chunk, error) {
	q := r.db.WithContext(ctx).Where("source_id = ?", sourceID)
	if onlyUnembedded {
		q = q.Where("embedding IS NULL")
	}
	var chunks []model.Chunk
	if err := q.Order("chunk_index ASC").Find(&chunks).Error; err != nil {
		return nil, fmt.Errorf("list chunks by source failed: %w", err)
	}
	return chunks, nil
}

func (r *ChunkRepository) UpdateEmbedding(ctx context.Context, chunkID uint, vec []float32) error {
	err := r.db.WithContext(ctx).
		Model(&model.Chunk{}).
		Where("id = ?", chunkID).
		Update("embedding", model.NewEmbedding(vec)).Error
	if err != nil {
		return fmt.Errorf("update chunk embedding failed: %w", err)
	}
	return nil
}

// Nearest returns at most k embedded chunks of the item ordered by ascending
// cosine distance to query. Postgres ranks in SQL through pgvector; other
// dialects rank in process.
func (r *ChunkRepository) Nearest(ctx context.Context, itemID uint, query []float32, k int) ([]model.ScoredChunk, error) {
	if k <= 0 {
		return []model.ScoredChunk{}, nil
	}
	if r.db.Dialector.Name() == "postgres" {
		return r.nearestPostgres(ctx, itemID, query, k)
	}
	return r.nearestInProcess(ctx, itemID, query, k)
}

func (r *ChunkRepository) nearestPostgres(ctx context.Context, itemID uint, query []float32, k int) ([]model.ScoredChunk, error) {
	vec := pgvector.NewVector(query)
	rows := []model.ScoredChunk{}
	err := r.db.WithContext(ctx).Raw(`
SELECT id, source_id, chunk_index, content, (embedding <=> ?::vector) AS distance
FROM chunks
WHERE item_id = ? AND embedding IS NOT NULL
ORDER BY embedding <=> ?::vector
LIMIT ?`, vec, itemID, vec, k).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	return rows, nil
}

func (r *ChunkRepository) nearestInProcess(ctx context.Context, itemID uint, query []float32, k int) ([]model.ScoredChunk, error) {
	var chunks []model.Chunk
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND embedding IS NOT NULL", itemID).
		Order("id ASC").
		Find(&chunks).Error
	if err != nil {
		return nil, fmt.Errorf("load embedded chunks failed: %w", err)
	}

	rows := make([]model.ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		if c.Embedding == nil {
			continue
		}
		dist, err := cosineDistance(query, c.Embedding.Slice())
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", c.ID, err)
		}
		rows = append(rows, model.ScoredChunk{
			ID:         c.ID,
			SourceID:   c.SourceID,
			ChunkIndex: c.ChunkIndex,
			Content:    c.Content,
			Distance:   dist,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Distance < rows[j].Distance
	})
	if len(rows) > k {
		rows = rows[:k]
	}
	return rows, nil
}

// SearchContent is a case-insensitive substring match, newest chunk first.
func (r *ChunkRepository) SearchContent(ctx context.Context, itemID uint, text string, limit int) ([]model.Chunk, error) {
	pattern := "%" + strings.ToLower(text) + "%"
	var chunks []model.Chunk
	err := r.db.WithContext(ctx).
		Select("id", "item_id", "source_id", "chunk_index", "content", "created_at").
		Where("item_id = ? AND LOWER(content) LIKE ?", itemID, pattern).
		Order("id DESC").
		Limit(limit).
		Find(&chunks).Error
	if err != nil {
		return nil, fmt.Errorf("search chunks failed: %w", err)
	}
	return chunks, nil
}

// cosineDistance mirrors pgvector's <=> operator: 1 - cos(a, b).
func cosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("different vector dimensions %d and %d", len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1, nil
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)), nil
}
