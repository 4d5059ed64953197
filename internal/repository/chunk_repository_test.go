package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRepository_EmbeddingLifecycle(t *testing.T) {
	db := openDB(t)
	repo := NewChunkRepository(db)
	ctx := context.Background()
	item := seedItem(t, db)
	source, chunks := seedSource(t, db, item.ID, "a", "b")

	pending, err := repo.ListBySource(ctx, source.ID, true)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, repo.UpdateEmbedding(ctx, chunks[0].ID, []float32{1, 0}))

	pending, err = repo.ListBySource(ctx, source.ID, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, chunks[1].ID, pending[0].ID)

	all, err := repo.ListBySource(ctx, source.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].Embedding)
	assert.Equal(t, []float32{1, 0}, all[0].Embedding.Slice())
}

func TestChunkRepository_Nearest(t *testing.T) {
	db := openDB(t)
	repo := NewChunkRepository(db)
	ctx := context.Background()
	item := seedItem(t, db)
	other := seedItem(t, db)

	_, chunks := seedSource(t, db, item.ID, "east", "north", "north-east", "unembedded")
	_, foreign := seedSource(t, db, other.ID, "other item")
	require.NoError(t, repo.UpdateEmbedding(ctx, chunks[0].ID, []float32{1, 0}))
	require.NoError(t, repo.UpdateEmbedding(ctx, chunks[1].ID, []float32{0, 1}))
	require.NoError(t, repo.UpdateEmbedding(ctx, chunks[2].ID, []float32{1, 1}))
	require.NoError(t, repo.UpdateEmbedding(ctx, foreign[0].ID, []float32{1, 0}))

	rows, err := repo.Nearest(ctx, item.ID, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, chunks[0].ID, rows[0].ID)
	assert.Equal(t, chunks[2].ID, rows[1].ID)
	assert.Equal(t, chunks[1].ID, rows[2].ID)
	assert.InDelta(t, 0, rows[0].Distance, 1e-9)
	assert.InDelta(t, 1, rows[2].Distance, 1e-9)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].Distance, rows[i].Distance)
	}
	for _, row := range rows {
		assert.NotEqual(t, chunks[3].ID, row.ID)
		assert.NotEqual(t, foreign[0].ID, row.ID)
	}

	top, err := repo.Nearest(ctx, item.ID, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "east", top[0].Content)
	assert.Equal(t, 0, top[0].ChunkIndex)
}

func TestChunkRepository_NearestEmpty(t *testing.T) {
	db := openDB(t)
	item := seedItem(t, db)
	seedSource(t, db, item.ID, "never embedded")

	rows, err := NewChunkRepository(db).Nearest(context.Background(), item.ID, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestChunkRepository_NearestDimensionMismatch(t *testing.T) {
	db := openDB(t)
	repo := NewChunkRepository(db)
	item := seedItem(t, db)
	_, chunks := seedSource(t, db, item.ID, "x")
	require.NoError(t, repo.UpdateEmbedding(context.Background(), chunks[0].ID, []float32{1, 0, 0}))

	_, err := repo.Nearest(context.Background(), item.ID, []float32{1, 0}, 5)
	assert.Error(t, err)
}

func TestChunkRepository_SearchContent(t *testing.T) {
	db := openDB(t)
	repo := NewChunkRepository(db)
	item := seedItem(t, db)
	_, chunks := seedSource(t, db, item.ID, "The PUMP was replaced", "filter cleaned", "pump noise")

	rows, err := repo.SearchContent(context.Background(), item.ID, "Pump", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, chunks[2].ID, rows[0].ID)
	assert.Equal(t, chunks[0].ID, rows[1].ID)

	rows, err = repo.SearchContent(context.Background(), item.ID, "pump", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCosineDistance(t *testing.T) {
	d, err := cosineDistance([]float32{1, 0}, []float32{-1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 2, d, 1e-9)

	d, err = cosineDistance([]float32{0, 0}, []float32{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)
}
