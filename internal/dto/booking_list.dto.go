package dto

import "time"

type BookingListDTO struct {
	ID            uint       `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"email"`
	CustomerPhone string     `json:"phone"`
	BookingType   string     `json:"booking_type"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}
