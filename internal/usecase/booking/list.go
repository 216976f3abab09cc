package booking

import (
	"context"

	domain "github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
	"github.com/BruksfildServices01/booking-assistant/internal/dto"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	f domain.Filter,
) ([]dto.BookingListDTO, error) {

	bookings, err := uc.repo.ListBookings(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			CustomerName:  b.Customer.Name,
			CustomerEmail: b.Customer.Email,
			CustomerPhone: b.Customer.Phone,
			BookingType:   b.BookingType,
			Date:          b.Date,
			Time:          b.Time,
			Status:        b.Status,
			Notes:         b.Notes,
			CreatedAt:     b.CreatedAt,
			CancelledAt:   b.CancelledAt,
		})
	}

	return out, nil
}
