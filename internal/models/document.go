package models

import "time"

type Document struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Filename   string `gorm:"size:255;not null" json:"filename"`
	StorageKey string `gorm:"size:512;not null" json:"storage_key"`
	SizeBytes  int64  `json:"size_bytes"`
	Chunks     int    `json:"chunks"`
	Status     string `gorm:"size:20;not null" json:"status"`
	Error      string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
