package dialog

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
)

type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateConfirming State = "confirming"
	StateCompleted  State = "completed"
)

type Field string

const (
	FieldName          Field = "name"
	FieldEmail         Field = "email"
	FieldPhone         Field = "phone"
	FieldTicketType    Field = "ticket_type"
	FieldDaysAttending Field = "days_attending"
	FieldBetaTester    Field = "beta_tester"
)

// RequiredFields are collected in this order.
var RequiredFields = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldTicketType,
	FieldDaysAttending,
}

var fieldLabels = map[Field]string{
	FieldName:          "Name",
	FieldEmail:         "Email",
	FieldPhone:         "Phone",
	FieldTicketType:    "Ticket Type",
	FieldDaysAttending: "Days Attending",
}

var questions = map[Field]string{
	FieldName:          "What is your full name? (Please provide your first and last name, e.g., 'John Doe' or 'My name is John Doe')",
	FieldEmail:         "What is your email address?",
	FieldPhone:         "What is your phone number?",
	FieldTicketType:    "What type of ticket would you like? (Standard, VIP, Student, or Group)",
	FieldDaysAttending: "How many days would you like to attend? (1, 2, or all 3 days)",
}

const BetaTesterQuestion = "Would you like to be a beta tester for unreleased games? This requires uploading your government ID (PDF). Please answer 'yes' or 'no'."

// Draft holds the slot values collected so far.
type Draft map[Field]string

func (d Draft) Get(f Field) string {
	return d[f]
}

func (d Draft) Has(f Field) bool {
	return d[f] != ""
}

func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Flow is the per-conversation booking state machine.
type Flow struct {
	State State `json:"state"`
	Draft Draft `json:"draft"`
}

func NewFlow() *Flow {
	return &Flow{State: StateIdle, Draft: Draft{}}
}

func (f *Flow) Reset() {
	f.State = StateIdle
	f.Draft = Draft{}
}

// Start moves an idle flow into collecting with an empty draft.
func (f *Flow) Start() {
	f.State = StateCollecting
	f.Draft = Draft{}
}

func isStored(field Field) bool {
	if field == FieldBetaTester {
		return true
	}
	for _, r := range RequiredFields {
		if r == field {
			return true
		}
	}
	return false
}

// Update stores required fields and beta_tester. Empty values are skipped and
// a ticket-type word is never accepted as a name.
func (f *Flow) Update(extracted Draft) {
	if f.Draft == nil {
		f.Draft = Draft{}
	}
	for k, v := range extracted {
		if v == "" || !isStored(k) {
			continue
		}
		if k == FieldName && booking.IsTicketWord(v) {
			continue
		}
		f.Draft[k] = v
	}
}

// Absorb extracts what it can from a message and stores it. A bare answer to
// the pending question is accepted too.
func (f *Flow) Absorb(message string) Draft {
	extracted := ExtractInfo(message)

	missing := f.MissingFields()
	if len(missing) > 0 {
		if _, ok := extracted[missing[0]]; !ok {
			if v, ok := extractBareAnswer(missing[0], message); ok {
				extracted[missing[0]] = v
			}
		}
	}

	f.Update(extracted)
	return extracted
}

func (f *Flow) MissingFields() []Field {
	var missing []Field
	for _, r := range RequiredFields {
		if !f.Draft.Has(r) {
			missing = append(missing, r)
		}
	}
	return missing
}

func (f *Flow) ReadyForConfirmation() bool {
	return len(f.MissingFields()) == 0
}

func (f *Flow) BetaAnswered() bool {
	_, ok := f.Draft[FieldBetaTester]
	return ok
}

func (f *Flow) Summary() string {
	parts := make([]string, 0, len(RequiredFields)+1)

	for _, field := range RequiredFields {
		value := f.Draft.Get(field)
		if value == "" || (field == FieldName && booking.IsTicketWord(value)) {
			value = "Not provided"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fieldLabels[field], value))
	}

	if f.BetaAnswered() {
		status := "No"
		if f.Draft.Get(FieldBetaTester) == "yes" {
			status = "Yes"
		}
		parts = append(parts, "Beta Tester: "+status)
	}

	return strings.Join(parts, "\n")
}

// NextQuestion asks for the first missing field, then the beta tester
// question, then nothing.
func (f *Flow) NextQuestion() string {
	missing := f.MissingFields()
	if len(missing) == 0 {
		if !f.BetaAnswered() {
			return BetaTesterQuestion
		}
		return ""
	}

	field := missing[0]
	if q, ok := questions[field]; ok {
		return q
	}
	return "Please provide " + strings.ReplaceAll(string(field), "_", " ")
}
