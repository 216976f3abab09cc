package booking

import (
	"sort"

	"github.com/BruksfildServices01/booking-assistant/internal/models"
)

type TypeCount struct {
	BookingType string `json:"booking_type"`
	Count       int    `json:"count"`
}

type Stats struct {
	Total           int         `json:"total"`
	Confirmed       int         `json:"confirmed"`
	UniqueCustomers int         `json:"unique_customers"`
	MostCommonType  string      `json:"most_common_type"`
	Distribution    []TypeCount `json:"distribution"`

	ByStatus map[string]int64 `json:"by_status,omitempty"`
}

// ComputeStats expects bookings with Customer preloaded.
func ComputeStats(bookings []models.Booking) Stats {
	st := Stats{
		Total:          len(bookings),
		MostCommonType: "N/A",
		Distribution:   []TypeCount{},
	}

	emails := make(map[string]struct{})
	counts := make(map[string]int)

	for _, b := range bookings {
		if Status(b.Status) == StatusConfirmed {
			st.Confirmed++
		}
		emails[b.Customer.Email] = struct{}{}
		counts[b.BookingType]++
	}
	st.UniqueCustomers = len(emails)

	for t, n := range counts {
		st.Distribution = append(st.Distribution, TypeCount{BookingType: t, Count: n})
	}
	sort.Slice(st.Distribution, func(i, j int) bool {
		if st.Distribution[i].Count != st.Distribution[j].Count {
			return st.Distribution[i].Count > st.Distribution[j].Count
		}
		return st.Distribution[i].BookingType < st.Distribution[j].BookingType
	})

	if len(st.Distribution) > 0 {
		st.MostCommonType = st.Distribution[0].BookingType
	}

	return st
}
