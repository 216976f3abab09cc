package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrBusiness("invalid_state"))

	assert.True(t, IsBusiness(err, "invalid_state"))
	assert.False(t, IsBusiness(err, "booking_not_found"))
	assert.False(t, IsBusiness(errors.New("invalid_state"), "invalid_state"))

	code, ok := AsBusiness(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid_state", code)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: customers.email (2067)")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 404, StatusFor("booking_not_found"))
	assert.Equal(t, 400, StatusFor("invalid_state"))
	assert.Equal(t, 400, StatusFor("not_found_anywhere"))
}
