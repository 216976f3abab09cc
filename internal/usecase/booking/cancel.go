package booking

import (
	"context"

	"github.com/BruksfildServices01/booking-assistant/internal/audit"
	domain "github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
	"github.com/BruksfildServices01/booking-assistant/internal/metrics"
	"github.com/BruksfildServices01/booking-assistant/internal/models"
	"github.com/BruksfildServices01/booking-assistant/internal/timezone"
)

type CancelBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	timezone string
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	actor string,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(b, timezone.NowIn(uc.timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCancelled()

	uc.audit.Dispatch(audit.Event{
		SessionID: actor,
		Action:    "booking_cancelled",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return b, nil
}
