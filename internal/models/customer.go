package models

import "time"

// Customer is created on the first confirmed booking for an email and never
// updated afterwards.
type Customer struct {
	ID uint `gorm:"primaryKey" json:"customer_id"`

	Name  string `gorm:"size:200;not null" json:"name"`
	Email string `gorm:"size:200;not null;uniqueIndex" json:"email"`
	Phone string `gorm:"size:20;not null" json:"phone"`

	Bookings []Booking `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
