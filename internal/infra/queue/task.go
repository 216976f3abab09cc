package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeEmailConfirmation = "email:confirmation"

// Confirmation emails that failed inline get this many more attempts.
const maxEmailRetry = 5

type EmailPayload struct {
	BookingID uint   `json:"booking_id"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

func NewEmailTask(p EmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailConfirmation, b), nil
}
