package booking

import (
	"context"

	"github.com/BruksfildServices01/booking-assistant/internal/models"
)

// Filter narrows booking listings. Name and Email match case-insensitive
// substrings, Date and Status match exactly.
type Filter struct {
	Name   string
	Email  string
	Date   string
	Status string
}

func (f Filter) Empty() bool {
	return f.Name == "" && f.Email == "" && f.Date == "" && f.Status == ""
}

type Repository interface {
	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		name string,
		email string,
		phone string,
	) (*models.Customer, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookings(
		ctx context.Context,
		f Filter,
	) ([]models.Booking, error)

	CountByStatus(
		ctx context.Context,
		f Filter,
	) (map[string]int64, error)
}
