package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer"`

	BookingType string `gorm:"size:100;not null" json:"booking_type"`
	Date        string `gorm:"size:20;not null;index" json:"date"` // YYYY-MM-DD
	Time        string `gorm:"size:10;not null" json:"time"`       // HH:MM

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
