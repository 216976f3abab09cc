package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/booking-assistant/internal/audit"
	domain "github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
	"github.com/BruksfildServices01/booking-assistant/internal/domain/dialog"
	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/metrics"
	"github.com/BruksfildServices01/booking-assistant/internal/models"
	"github.com/BruksfildServices01/booking-assistant/internal/timezone"
	"github.com/BruksfildServices01/booking-assistant/internal/validators"
)

// Event describes the convention every ticket is booked for.
type Event struct {
	Name      string
	LeadDays  int
	StartTime string
	Timezone  string
}

type confirmInput struct {
	Name          string `validate:"required"`
	Email         string `validate:"required"`
	Phone         string `validate:"required"`
	TicketType    string `validate:"required"`
	DaysAttending string `validate:"required"`
}

type ConfirmResult struct {
	Booking  *models.Booking
	Customer *models.Customer
}

type ConfirmBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	event    Event
	validate *validator.Validate
}

func NewConfirmBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	event Event,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:     repo,
		audit:    audit,
		event:    event,
		validate: validator.New(),
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	sessionID string,
	draft dialog.Draft,
) (*ConfirmResult, error) {

	in := confirmInput{
		Name:          strings.TrimSpace(draft.Get(dialog.FieldName)),
		Email:         strings.TrimSpace(draft.Get(dialog.FieldEmail)),
		Phone:         strings.TrimSpace(draft.Get(dialog.FieldPhone)),
		TicketType:    strings.ToLower(strings.TrimSpace(draft.Get(dialog.FieldTicketType))),
		DaysAttending: strings.TrimSpace(draft.Get(dialog.FieldDaysAttending)),
	}

	if err := uc.validate.Struct(in); err != nil {
		return nil, httperr.ErrBusiness("missing_fields")
	}
	if !validators.IsEmailFormatValid(in.Email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}
	if domain.IsTicketWord(in.Name) {
		return nil, httperr.ErrBusiness("invalid_name")
	}

	startTime, err := dialog.NormalizeTime(uc.event.StartTime)
	if err != nil {
		startTime = "09:00"
	}

	customer, err := uc.repo.GetOrCreateCustomer(ctx, in.Name, in.Email, in.Phone)
	if err != nil {
		return nil, err
	}

	ticket := domain.TicketType(in.TicketType)
	beta := draft.Get(dialog.FieldBetaTester) == "yes"

	now := timezone.NowIn(uc.event.Timezone)
	b := &models.Booking{
		CustomerID:  customer.ID,
		BookingType: fmt.Sprintf("%s - %s", uc.event.Name, ticket.Title()),
		Date:        now.AddDate(0, 0, uc.event.LeadDays).Format("2006-01-02"),
		Time:        startTime,
		Status:      string(domain.InitialStatus()),
		Notes:       Notes(ticket, in.DaysAttending, beta),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	b.Customer = *customer

	metrics.IncBookingCreated(b.Status)

	uc.audit.Dispatch(audit.Event{
		SessionID: sessionID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata: map[string]any{
			"customer_id": customer.ID,
			"ticket_type": in.TicketType,
			"beta_tester": beta,
		},
	})

	return &ConfirmResult{Booking: b, Customer: customer}, nil
}

func Notes(ticket domain.TicketType, days string, beta bool) string {
	parts := []string{
		"Ticket Type: " + ticket.Title(),
		"Days Attending: " + days + " day(s)",
	}
	if beta {
		parts = append(parts, "Beta Tester: Yes (Government ID uploaded)")
	} else {
		parts = append(parts, "Beta Tester: No")
	}
	return strings.Join(parts, "\n")
}
