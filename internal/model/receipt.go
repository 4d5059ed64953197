package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Receipt is an append-only record of one grounded recommendation.
// Only DeletedAt changes after creation.
type Receipt struct {
	ID             uint                          `gorm:"primaryKey" json:"id"`
	ItemID         uint                          `gorm:"not null;index;uniqueIndex:idx_receipt_item_version" json:"item_id"`
	ReceiptVersion int                           `gorm:"not null;uniqueIndex:idx_receipt_item_version" json:"receipt_version"`
	Question       string                        `gorm:"type:text;not null" json:"question"`
	Recommendation string                        `gorm:"type:text;not null" json:"recommendation"`
	Rationale      string                        `gorm:"type:text;not null" json:"rationale"`
	Assumptions    datatypes.JSONSlice[string]   `gorm:"not null" json:"assumptions"`
	Citations      datatypes.JSONSlice[Citation] `gorm:"not null" json:"citations"`
	ChatModel      string                        `gorm:"size:128;not null" json:"chat_model"`
	EmbedModel     string                        `gorm:"size:128;not null" json:"embed_model"`
	KUsed          int                           `gorm:"not null" json:"k_used"`
	PromptVersion  string                        `gorm:"size:32;not null" json:"prompt_version"`
	CreatedAt      time.Time                     `gorm:"index" json:"created_at"`
	DeletedAt      gorm.DeletedAt                `gorm:"index" json:"deleted_at"`
}

type Citation struct {
	ChunkID  uint    `json:"chunkId"`
	SourceID uint    `json:"sourceId"`
	Distance float64 `json:"distance"`
}

// ReceiptEvent is published after a receipt is created or soft-deleted.
type ReceiptEvent struct {
	Type           string    `json:"type"`
	ReceiptID      uint      `json:"receipt_id"`
	ItemID         uint      `json:"item_id"`
	ReceiptVersion int       `json:"receipt_version"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const (
	ReceiptEventCreated = "receipt.created"
	ReceiptEventDeleted = "receipt.deleted"
)
