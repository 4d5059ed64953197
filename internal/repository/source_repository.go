package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/YeswanthC7/keepkind/internal/model"
)

type SourceRepository struct {
	db *gorm.DB
}

func NewSourceRepository(db *gorm.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// CreateWithChunks stores the source and its chunks in one transaction.
// Chunk indices are assigned from slice order starting at 0.
func (r *SourceRepository) CreateWithChunks(ctx context.Context, source *model.Source, contents []string) ([]model.Chunk, error) {
	chunks := make([]model.Chunk, 0, len(contents))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(source).Error; err != nil {
			return fmt.Errorf("create source failed: %w", err)
		}
		if len(contents) == 0 {
			return nil
		}
		for i, content := range contents {
			chunks = append(chunks, model.Chunk{
				ItemID:     source.ItemID,
				SourceID:   source.ID,
				ChunkIndex: i,
				Content:    content,
			})
		}
		if err := tx.CreateInBatches(&chunks, 100).Error; err != nil {
			return fmt.Errorf("create chunks batch failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

func (r *SourceRepository) GetByID(ctx context.Context, id uint) (*model.Source, error) {
	var source model.Source
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&source).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get source failed: %w", err)
	}
	return &source, nil
}
