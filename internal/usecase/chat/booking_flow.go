package chat

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-assistant/internal/domain/dialog"
	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/mailer"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/memory"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/queue"
	"github.com/BruksfildServices01/booking-assistant/internal/metrics"
)

var (
	confirmYesRe = regexp.MustCompile(`(?i)\b(yes|confirm|correct|proceed)\b`)
	confirmNoRe  = regexp.MustCompile(`(?i)\b(no|cancel|wrong|change)\b`)
	betaYesRe    = regexp.MustCompile(`(?i)\b(yes|yeah|yep|sure|ok|okay)\b`)
	betaNoRe     = regexp.MustCompile(`(?i)\b(no|nope|nah|not interested)\b`)
)

const confirmPrompt = "Is this correct? Please reply 'yes' to confirm or 'no' to start over."

func (uc *ProcessMessage) handleBooking(ctx context.Context, sess *memory.Session, message string) *Reply {
	flow := sess.Flow

	if flow.State == dialog.StateConfirming {
		switch {
		case confirmYesRe.MatchString(message):
			return uc.confirm(ctx, sess)
		case confirmNoRe.MatchString(message):
			flow.Reset()
			return info(fmt.Sprintf("I understand. Let's start over. How can I help you with %s gaming convention?", uc.opts.EventName))
		}
	}

	if !flow.BetaAnswered() && flow.ReadyForConfirmation() {
		var lead string
		switch {
		case betaYesRe.MatchString(message):
			flow.Update(dialog.Draft{dialog.FieldBetaTester: "yes"})
			lead = "Great! Please upload your government ID (PDF) in the 'Upload PDFs' section. Once uploaded, we'll process your beta tester application. Now, let me confirm your ticket booking details."
		case betaNoRe.MatchString(message):
			flow.Update(dialog.Draft{dialog.FieldBetaTester: "no"})
			lead = "No problem! You can still enjoy all the convention activities. Now, let me confirm your ticket booking details."
		default:
			return info(flow.NextQuestion())
		}

		flow.State = dialog.StateConfirming
		return info(fmt.Sprintf("%s\n\nI have the following details:\n\n%s\n\n%s", lead, flow.Summary(), confirmPrompt))
	}

	if flow.State == dialog.StateIdle {
		flow.Start()
		welcome := fmt.Sprintf("Welcome to %s gaming convention! I'll help you book your tickets. This is a 3-day event where you can enjoy new games, LAN games, and learn about gaming technology.", uc.opts.EventName)
		return info(welcome + "\n\n" + flow.NextQuestion())
	}

	flow.Absorb(message)

	if flow.ReadyForConfirmation() && flow.BetaAnswered() {
		flow.State = dialog.StateConfirming
		return info(fmt.Sprintf("I have the following details:\n\n%s\n\n%s", flow.Summary(), confirmPrompt))
	}

	return info(flow.NextQuestion())
}

func (uc *ProcessMessage) confirm(ctx context.Context, sess *memory.Session) *Reply {
	draft := sess.Flow.Draft.Clone()

	res, err := uc.deps.Confirm.Execute(ctx, sess.ID, draft)
	if err != nil {
		uc.log.Warn("booking confirmation failed", zap.String("session_id", sess.ID), zap.Error(err))
		return &Reply{
			Response: fmt.Sprintf("I encountered an error: %s. Please try again.", confirmErrorMessage(err, sess.Flow)),
			ToolUsed: ToolBooking,
			Status:   StatusError,
		}
	}

	bookingID := res.Booking.ID
	email := draft.Get(dialog.FieldEmail)
	beta := draft.Get(dialog.FieldBetaTester) == "yes"

	subject := fmt.Sprintf("%s - Ticket Confirmation (ID: %d)", uc.opts.EventName, bookingID)
	body := EmailBody(uc.opts.EventName, draft, bookingID)

	var betaNote string
	if beta {
		betaNote = " Don't forget to upload your government ID (PDF) in the 'Upload PDFs' section to complete your beta tester registration!"
	}

	reply := &Reply{ToolUsed: ToolBooking, BookingID: &bookingID}

	sendErr := uc.deps.Mailer.Send(ctx, email, subject, body)
	sent := sendErr == nil
	reply.EmailSent = &sent

	if sent {
		metrics.IncEmail("sent")
		reply.Status = StatusSuccess
		reply.Response = fmt.Sprintf("✅ Ticket booking confirmed! Your Ticket ID is %d. A confirmation email has been sent to %s.%s", bookingID, email, betaNote)
	} else {
		metrics.IncEmail("failed")
		uc.retryEmail(ctx, sendErr, queue.EmailPayload{BookingID: bookingID, To: email, Subject: subject, Body: body})

		reply.Status = StatusWarning
		reply.Response = fmt.Sprintf("✅ Ticket booking confirmed! Your Ticket ID is %d. However, I couldn't send the confirmation email (%s). Your booking has been saved.%s", bookingID, sendErr.Error(), betaNote)
	}

	sess.Flow.Reset()
	return reply
}

// retryEmail queues transient send failures. Misconfiguration and bad
// addresses would fail again.
func (uc *ProcessMessage) retryEmail(ctx context.Context, sendErr error, p queue.EmailPayload) {
	if uc.deps.Queue == nil {
		return
	}
	if errors.Is(sendErr, mailer.ErrNotConfigured) || errors.Is(sendErr, mailer.ErrInvalidRecipient) {
		return
	}

	if err := uc.deps.Queue.EnqueueEmail(ctx, p); err != nil {
		uc.log.Warn("email retry enqueue failed", zap.Uint("booking_id", p.BookingID), zap.Error(err))
		return
	}
	metrics.IncEmail("queued")
}

func confirmErrorMessage(err error, flow *dialog.Flow) string {
	code, ok := httperr.AsBusiness(err)
	if !ok {
		return err.Error()
	}

	switch code {
	case "missing_fields":
		missing := flow.MissingFields()
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return "Missing required fields: " + strings.Join(names, ", ")
	case "invalid_email":
		return "Invalid email format"
	case "invalid_name":
		return "Invalid name provided. Please provide your actual name, not a ticket type."
	default:
		return code
	}
}
