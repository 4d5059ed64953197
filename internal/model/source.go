package model

import "time"

const (
	SourceTypeText = "text"
	SourceTypePDF  = "pdf"

	DefaultTrustLevel = "normal"
)

// Source is one ingested text belonging to an item. Rows are never updated.
type Source struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ItemID      uint      `gorm:"not null;index" json:"item_id"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	URI         string    `gorm:"size:512;not null" json:"uri"`
	TrustLevel  string    `gorm:"size:32;not null" json:"trust_level"`
	ContentHash string    `gorm:"size:64;not null;index" json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}
