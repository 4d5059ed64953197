package model

import "time"

type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Category  string    `gorm:"size:128" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
