package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2026, 12, 31, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"today", "2026-12-31"},
		{"Tomorrow", "2027-01-01"},
		{"5/1/2026", "2026-05-01"},
		{"12-25-2026", "2026-12-25"},
		{"25/12/26", "26-12-25"},
		{"2026-05-01", "2026-05-01"},
		{"next friday", "next friday"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.in, now))
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9", "09:00"},
		{"9:30", "09:30"},
		{"3pm", "15:00"},
		{"3:15 PM", "15:15"},
		{"12 AM", "00:00"},
		{"12pm", "12:00"},
		{"23:59", "23:59"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTime_Invalid(t *testing.T) {
	for _, in := range []string{"noon", "25:00", "ab:cd", ""} {
		_, err := NormalizeTime(in)
		assert.Error(t, err, in)
	}
}
