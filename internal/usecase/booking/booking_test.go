package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-assistant/internal/audit"
	domain "github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
	"github.com/BruksfildServices01/booking-assistant/internal/domain/dialog"
	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/models"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetOrCreateCustomer(ctx context.Context, name, email, phone string) (*models.Customer, error) {
	args := m.Called(ctx, name, email, phone)
	if c, ok := args.Get(0).(*models.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*models.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) ListBookings(ctx context.Context, f domain.Filter) ([]models.Booking, error) {
	args := m.Called(ctx, f)
	if bs, ok := args.Get(0).([]models.Booking); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) CountByStatus(ctx context.Context, f domain.Filter) (map[string]int64, error) {
	args := m.Called(ctx, f)
	if c, ok := args.Get(0).(map[string]int64); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memorySink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *memorySink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}

func newDispatcher(t *testing.T) (*audit.Dispatcher, *memorySink) {
	t.Helper()
	sink := &memorySink{}
	return audit.NewDispatcher(sink, zap.NewNop()), sink
}

var testEvent = Event{
	Name:      "Gates Of Argonath",
	LeadDays:  30,
	StartTime: "9am",
	Timezone:  "UTC",
}

func fullDraft() dialog.Draft {
	return dialog.Draft{
		dialog.FieldName:          gofakeit.FirstName() + " " + gofakeit.LastName(),
		dialog.FieldEmail:         gofakeit.Email(),
		dialog.FieldPhone:         gofakeit.Numerify("##########"),
		dialog.FieldTicketType:    "vip",
		dialog.FieldDaysAttending: "3",
		dialog.FieldBetaTester:    "yes",
	}
}

func TestConfirmBooking_Success(t *testing.T) {
	repo := new(mockRepo)
	disp, sink := newDispatcher(t)
	uc := NewConfirmBooking(repo, disp, testEvent)
	draft := fullDraft()

	customer := &models.Customer{ID: 11, Name: draft[dialog.FieldName], Email: draft[dialog.FieldEmail]}
	repo.On("GetOrCreateCustomer", mock.Anything, draft[dialog.FieldName], draft[dialog.FieldEmail], draft[dialog.FieldPhone]).
		Return(customer, nil).Once()

	var created *models.Booking
	repo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Booking)
			created.ID = 42
		}).
		Return(nil).Once()

	res, err := uc.Execute(context.Background(), "session-1", draft)
	require.NoError(t, err)
	disp.Close()

	require.NotNil(t, created)
	assert.Equal(t, uint(42), res.Booking.ID)
	assert.Equal(t, uint(11), res.Customer.ID)
	assert.Equal(t, uint(11), created.CustomerID)
	assert.Equal(t, "Gates Of Argonath - Vip", created.BookingType)
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, "09:00", created.Time)
	assert.Equal(t, time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02"), created.Date)
	assert.Equal(t, "Ticket Type: Vip\nDays Attending: 3 day(s)\nBeta Tester: Yes (Government ID uploaded)", created.Notes)
	assert.Equal(t, []string{"booking_created"}, sink.actions())
	repo.AssertExpectations(t)
}

func TestConfirmBooking_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d dialog.Draft)
		code   string
	}{
		{"missing_phone", func(d dialog.Draft) { delete(d, dialog.FieldPhone) }, "missing_fields"},
		{"blank_days", func(d dialog.Draft) { d[dialog.FieldDaysAttending] = "  " }, "missing_fields"},
		{"bad_email", func(d dialog.Draft) { d[dialog.FieldEmail] = "frodo@shire" }, "invalid_email"},
		{"ticket_word_name", func(d dialog.Draft) { d[dialog.FieldName] = "Premium" }, "invalid_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			disp, sink := newDispatcher(t)
			uc := NewConfirmBooking(repo, disp, testEvent)

			d := fullDraft()
			tt.mutate(d)

			_, err := uc.Execute(context.Background(), "s", d)
			disp.Close()

			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
			assert.Empty(t, sink.actions())
			repo.AssertNotCalled(t, "GetOrCreateCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestConfirmBooking_RepoError(t *testing.T) {
	repo := new(mockRepo)
	disp, _ := newDispatcher(t)
	defer disp.Close()
	uc := NewConfirmBooking(repo, disp, testEvent)

	repo.On("GetOrCreateCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("database is locked")).Once()

	_, err := uc.Execute(context.Background(), "s", fullDraft())
	assert.ErrorContains(t, err, "database is locked")
	repo.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestNotes(t *testing.T) {
	assert.Equal(t,
		"Ticket Type: Standard\nDays Attending: 1 day(s)\nBeta Tester: No",
		Notes(domain.TicketStandard, "1", false),
	)
}

func TestCancelBooking(t *testing.T) {
	t.Run("cancels_confirmed", func(t *testing.T) {
		repo := new(mockRepo)
		disp, sink := newDispatcher(t)
		uc := NewCancelBooking(repo, disp, "UTC")

		b := &models.Booking{ID: 3, Status: "confirmed"}
		repo.On("GetBooking", mock.Anything, uint(3)).Return(b, nil).Once()
		repo.On("UpdateBooking", mock.Anything, b).Return(nil).Once()

		got, err := uc.Execute(context.Background(), "admin@example.com", 3)
		require.NoError(t, err)
		disp.Close()

		assert.Equal(t, "cancelled", got.Status)
		assert.NotNil(t, got.CancelledAt)
		assert.Equal(t, []string{"booking_cancelled"}, sink.actions())
		repo.AssertExpectations(t)
	})

	t.Run("already_cancelled", func(t *testing.T) {
		repo := new(mockRepo)
		disp, _ := newDispatcher(t)
		defer disp.Close()
		uc := NewCancelBooking(repo, disp, "UTC")

		repo.On("GetBooking", mock.Anything, uint(3)).Return(&models.Booking{ID: 3, Status: "cancelled"}, nil).Once()

		_, err := uc.Execute(context.Background(), "admin", 3)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		repo.AssertNotCalled(t, "UpdateBooking", mock.Anything, mock.Anything)
	})

	t.Run("not_found", func(t *testing.T) {
		repo := new(mockRepo)
		disp, _ := newDispatcher(t)
		defer disp.Close()
		uc := NewCancelBooking(repo, disp, "UTC")

		repo.On("GetBooking", mock.Anything, uint(99)).Return(nil, httperr.ErrBusiness("booking_not_found")).Once()

		_, err := uc.Execute(context.Background(), "admin", 99)
		assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
	})
}

func TestListBookings(t *testing.T) {
	repo := new(mockRepo)
	uc := NewListBookings(repo)
	f := domain.Filter{Email: "shire"}

	repo.On("ListBookings", mock.Anything, f).Return([]models.Booking{
		{
			ID:          1,
			BookingType: "Gates Of Argonath - Vip",
			Date:        "2026-05-01",
			Time:        "09:00",
			Status:      "confirmed",
			Notes:       "Ticket Type: Vip",
			Customer:    models.Customer{Name: "Frodo Baggins", Email: "frodo@shire.me", Phone: "5551234567"},
		},
	}, nil).Once()

	rows, err := uc.Execute(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Frodo Baggins", rows[0].CustomerName)
	assert.Equal(t, "frodo@shire.me", rows[0].CustomerEmail)
	assert.Equal(t, "5551234567", rows[0].CustomerPhone)
	assert.Equal(t, "Gates Of Argonath - Vip", rows[0].BookingType)
}

func TestGetStats(t *testing.T) {
	repo := new(mockRepo)
	uc := NewGetStats(repo)

	repo.On("ListBookings", mock.Anything, domain.Filter{}).Return([]models.Booking{
		{BookingType: "A", Status: "confirmed", Customer: models.Customer{Email: "a@x.io"}},
		{BookingType: "A", Status: "cancelled", Customer: models.Customer{Email: "b@x.io"}},
		{BookingType: "B", Status: "confirmed", Customer: models.Customer{Email: "a@x.io"}},
	}, nil).Once()
	repo.On("CountByStatus", mock.Anything, domain.Filter{}).Return(map[string]int64{"confirmed": 2, "cancelled": 1}, nil).Once()

	st, err := uc.Execute(context.Background(), domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Confirmed)
	assert.Equal(t, 2, st.UniqueCustomers)
	assert.Equal(t, "A", st.MostCommonType)
	assert.Equal(t, int64(1), st.ByStatus["cancelled"])
}
