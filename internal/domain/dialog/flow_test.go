package dialog

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlow_Update(t *testing.T) {
	f := NewFlow()

	f.Update(Draft{
		FieldName:   "vip",
		FieldEmail:  "a@b.io",
		FieldPhone:  "",
		"favourite": "pizza",
	})

	assert.False(t, f.Draft.Has(FieldName), "ticket words are never names")
	assert.Equal(t, "a@b.io", f.Draft.Get(FieldEmail))
	assert.False(t, f.Draft.Has(FieldPhone))
	_, stored := f.Draft["favourite"]
	assert.False(t, stored)
}

func TestFlow_MissingFieldsAndQuestions(t *testing.T) {
	f := NewFlow()
	f.Start()

	assert.Equal(t, RequiredFields, f.MissingFields())
	assert.Contains(t, f.NextQuestion(), "full name")

	f.Update(Draft{
		FieldName:          gofakeit.FirstName() + " " + gofakeit.LastName(),
		FieldEmail:         gofakeit.Email(),
		FieldPhone:         "5551234567",
		FieldTicketType:    "standard",
		FieldDaysAttending: "2",
	})

	assert.Empty(t, f.MissingFields())
	assert.True(t, f.ReadyForConfirmation())
	assert.Equal(t, BetaTesterQuestion, f.NextQuestion())

	f.Update(Draft{FieldBetaTester: "no"})
	assert.Equal(t, "", f.NextQuestion())
}

func TestFlow_NextQuestionOrder(t *testing.T) {
	f := NewFlow()
	f.Update(Draft{FieldName: "Frodo Baggins"})
	assert.Equal(t, questions[FieldEmail], f.NextQuestion())

	f.Update(Draft{FieldEmail: "frodo@shire.me"})
	assert.Equal(t, questions[FieldPhone], f.NextQuestion())
}

func TestFlow_Summary(t *testing.T) {
	f := NewFlow()
	f.Update(Draft{
		FieldName:          "Frodo Baggins",
		FieldEmail:         "frodo@shire.me",
		FieldTicketType:    "vip",
		FieldDaysAttending: "3",
		FieldBetaTester:    "yes",
	})

	want := "Name: Frodo Baggins\n" +
		"Email: frodo@shire.me\n" +
		"Phone: Not provided\n" +
		"Ticket Type: vip\n" +
		"Days Attending: 3\n" +
		"Beta Tester: Yes"
	assert.Equal(t, want, f.Summary())
}

func TestFlow_Absorb(t *testing.T) {
	t.Run("bare_name_answer", func(t *testing.T) {
		f := NewFlow()
		f.Start()
		f.Absorb("frodo baggins")
		assert.Equal(t, "frodo baggins", f.Draft.Get(FieldName))
	})

	t.Run("lowercase_intro_stores_only_the_name", func(t *testing.T) {
		for msg, want := range map[string]string{
			"i'm frodo baggins": "frodo baggins",
			"this is sam":       "sam",
		} {
			f := NewFlow()
			f.Start()
			f.Absorb(msg)
			assert.Equal(t, want, f.Draft.Get(FieldName), msg)
		}
	})

	t.Run("intro_without_name_is_not_a_bare_answer", func(t *testing.T) {
		f := NewFlow()
		f.Start()
		f.Absorb("this is me")
		assert.False(t, f.Draft.Has(FieldName))
	})

	t.Run("bare_days_answer", func(t *testing.T) {
		f := NewFlow()
		f.Update(Draft{
			FieldName:       "Frodo Baggins",
			FieldEmail:      "frodo@shire.me",
			FieldPhone:      "5551234567",
			FieldTicketType: "vip",
		})
		f.Absorb("2")
		assert.Equal(t, "2", f.Draft.Get(FieldDaysAttending))
	})

	t.Run("bare_answer_only_for_pending_field", func(t *testing.T) {
		f := NewFlow()
		f.Start()
		f.Absorb("2")
		assert.False(t, f.Draft.Has(FieldDaysAttending))
		assert.False(t, f.Draft.Has(FieldName))
	})
}

func TestFlow_Reset(t *testing.T) {
	f := NewFlow()
	f.Start()
	f.Update(Draft{FieldEmail: "a@b.io"})
	f.State = StateConfirming

	f.Reset()

	require.NotNil(t, f.Draft)
	assert.Equal(t, StateIdle, f.State)
	assert.Empty(t, f.Draft)
}
