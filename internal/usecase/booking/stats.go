package booking

import (
	"context"

	domain "github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
)

type GetStats struct {
	repo domain.Repository
}

func NewGetStats(repo domain.Repository) *GetStats {
	return &GetStats{repo: repo}
}

func (uc *GetStats) Execute(
	ctx context.Context,
	f domain.Filter,
) (domain.Stats, error) {

	bookings, err := uc.repo.ListBookings(ctx, f)
	if err != nil {
		return domain.Stats{}, err
	}

	st := domain.ComputeStats(bookings)

	byStatus, err := uc.repo.CountByStatus(ctx, f)
	if err != nil {
		return domain.Stats{}, err
	}
	st.ByStatus = byStatus

	return st, nil
}
