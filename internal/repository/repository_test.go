package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/YeswanthC7/keepkind/internal/model"
	"github.com/YeswanthC7/keepkind/internal/platform/database/dbtest"
)

func seedItem(t *testing.T, db *gorm.DB) *model.Item {
	t.Helper()
	item := &model.Item{Name: "Dishwasher", Category: "appliance"}
	require.NoError(t, NewItemRepository(db).Create(context.Background(), item))
	return item
}

func seedSource(t *testing.T, db *gorm.DB, itemID uint, contents ...string) (*model.Source, []model.Chunk) {
	t.Helper()
	source := &model.Source{
		ItemID:      itemID,
		Type:        model.SourceTypeText,
		URI:         "text-source",
		TrustLevel:  model.DefaultTrustLevel,
		ContentHash: "hash",
	}
	chunks, err := NewSourceRepository(db).CreateWithChunks(context.Background(), source, contents)
	require.NoError(t, err)
	return source, chunks
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t)
}
