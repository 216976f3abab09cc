package models

import "time"

// DocumentChunk is one embedded slice of an uploaded PDF. Embedding holds the
// float32 vector encoded little-endian.
type DocumentChunk struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Source    string `gorm:"size:255;not null;index" json:"source"`
	Position  int    `json:"position"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Embedding []byte `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
