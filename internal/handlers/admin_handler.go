package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
	"github.com/BruksfildServices01/booking-assistant/internal/domain/dialog"
	"github.com/BruksfildServices01/booking-assistant/internal/dto"
	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/httpresp"
	"github.com/BruksfildServices01/booking-assistant/internal/middleware"
	"github.com/BruksfildServices01/booking-assistant/internal/models"
	"github.com/BruksfildServices01/booking-assistant/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type bookingLister interface {
	Execute(ctx context.Context, f domain.Filter) ([]dto.BookingListDTO, error)
}

type statsReader interface {
	Execute(ctx context.Context, f domain.Filter) (domain.Stats, error)
}

type bookingCanceller interface {
	Execute(ctx context.Context, actor string, bookingID uint) (*models.Booking, error)
}

type AdminHandler struct {
	list     bookingLister
	stats    statsReader
	cancel   bookingCanceller
	timezone string
}

func NewAdminHandler(
	list bookingLister,
	stats statsReader,
	cancel bookingCanceller,
	tz string,
) *AdminHandler {
	return &AdminHandler{
		list:     list,
		stats:    stats,
		cancel:   cancel,
		timezone: tz,
	}
}

// ======================================================
// HELPERS
// ======================================================

// filterFromQuery reads name, email, date and status. Dates accept the same
// spellings the assistant understands ("tomorrow", "05/01/2026").
func (h *AdminHandler) filterFromQuery(c *gin.Context) (domain.Filter, bool) {
	f := domain.Filter{
		Name:   strings.TrimSpace(c.Query("name")),
		Email:  strings.TrimSpace(c.Query("email")),
		Status: strings.ToLower(strings.TrimSpace(c.Query("status"))),
	}

	if d := strings.TrimSpace(c.Query("date")); d != "" {
		f.Date = dialog.NormalizeDate(d, timezone.NowIn(h.timezone))
	}

	if f.Status != "" && !domain.Status(f.Status).Valid() {
		httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
		return f, false
	}

	return f, true
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *AdminHandler) ListBookings(c *gin.Context) {
	f, ok := h.filterFromQuery(c)
	if !ok {
		return
	}

	rows, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// STATS
// ======================================================

func (h *AdminHandler) Stats(c *gin.Context) {
	f, ok := h.filterFromQuery(c)
	if !ok {
		return
	}

	st, err := h.stats.Execute(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, st)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AdminHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	actor := c.GetString(middleware.ContextAdminEmail)

	b, err := h.cancel.Execute(c.Request.Context(), actor, uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, b)
}
