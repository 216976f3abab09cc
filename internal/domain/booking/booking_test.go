package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/models"
)

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("confirmed_can_be_cancelled", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusConfirmed)}
		require.NoError(t, Cancel(b, now))
		assert.Equal(t, string(StatusCancelled), b.Status)
		require.NotNil(t, b.CancelledAt)
		assert.Equal(t, now, *b.CancelledAt)
	})

	t.Run("pending_can_be_cancelled", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusPending)}
		require.NoError(t, Cancel(b, now))
	})

	t.Run("cancelled_twice_is_invalid", func(t *testing.T) {
		b := &models.Booking{Status: string(StatusCancelled)}
		err := Cancel(b, now)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
		assert.Nil(t, b.CancelledAt)
	})
}

func TestTicketType(t *testing.T) {
	assert.Equal(t, "Standard", TicketStandard.Title())
	assert.Equal(t, "Vip", TicketVIP.Title())
	assert.Equal(t, "Group", TicketGroup.Title())

	assert.True(t, IsTicketWord("VIP"))
	assert.True(t, IsTicketWord(" deluxe "))
	assert.False(t, IsTicketWord("Frodo"))
}

func TestComputeStats(t *testing.T) {
	bookings := []models.Booking{
		{BookingType: "Gates Of Argonath - Vip", Status: "confirmed", Customer: models.Customer{Email: "a@x.io"}},
		{BookingType: "Gates Of Argonath - Standard", Status: "confirmed", Customer: models.Customer{Email: "b@x.io"}},
		{BookingType: "Gates Of Argonath - Vip", Status: "cancelled", Customer: models.Customer{Email: "a@x.io"}},
	}

	st := ComputeStats(bookings)

	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Confirmed)
	assert.Equal(t, 2, st.UniqueCustomers)
	assert.Equal(t, "Gates Of Argonath - Vip", st.MostCommonType)
	require.Len(t, st.Distribution, 2)
	assert.Equal(t, 2, st.Distribution[0].Count)
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(nil)
	assert.Equal(t, 0, st.Total)
	assert.Equal(t, "N/A", st.MostCommonType)
	assert.NotNil(t, st.Distribution)
}

func TestFilterEmpty(t *testing.T) {
	assert.True(t, Filter{}.Empty())
	assert.False(t, Filter{Date: "2026-01-01"}.Empty())
}
