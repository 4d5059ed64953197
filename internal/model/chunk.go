package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Chunk is a contiguous slice of a source's normalized text.
// Embedding stays nil until the source is embedded.
type Chunk struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ItemID     uint       `gorm:"not null;index" json:"item_id"`
	SourceID   uint       `gorm:"not null;index;uniqueIndex:idx_chunk_source_index" json:"source_id"`
	ChunkIndex int        `gorm:"not null;uniqueIndex:idx_chunk_source_index" json:"chunk_index"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Embedding  *Embedding `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Embedding is stored in the pgvector text form "[0.1,0.2]". Postgres gets a
// real vector column; other dialects keep the same literal in a text column.
type Embedding struct {
	pgvector.Vector
}

func NewEmbedding(vec []float32) *Embedding {
	return &Embedding{Vector: pgvector.NewVector(vec)}
}

func (Embedding) GormDataType() string {
	return "vector"
}

func (Embedding) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "vector"
	}
	return "text"
}

// ScoredChunk is a retrieval row: the chunk plus its distance to the query.
type ScoredChunk struct {
	ID         uint    `json:"id"`
	SourceID   uint    `json:"source_id"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Distance   float64 `json:"distance"`
}
