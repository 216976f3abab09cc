package validators

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestIsEmailFormatValid(t *testing.T) {
	assert.True(t, IsEmailFormatValid(gofakeit.Email()))
	assert.True(t, IsEmailFormatValid("frodo.baggins+con@shire.co.uk"))

	for _, bad := range []string{"", "frodo", "frodo@", "@shire.me", "frodo@shire", "frodo@shire.m", "fro do@shire.me"} {
		assert.False(t, IsEmailFormatValid(bad), bad)
	}
}
