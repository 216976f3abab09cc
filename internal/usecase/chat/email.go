package chat

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
	"github.com/BruksfildServices01/booking-assistant/internal/domain/dialog"
)

// EmailBody renders the plain-text ticket confirmation.
func EmailBody(event string, d dialog.Draft, bookingID uint) string {
	var betaInfo string
	if d.Get(dialog.FieldBetaTester) == "yes" {
		betaInfo = "\nBeta Tester: Yes - Please ensure your government ID (PDF) is uploaded in the system."
	}

	ticket := booking.TicketType(strings.ToLower(d.Get(dialog.FieldTicketType)))

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nDear %s,\n\n", d.Get(dialog.FieldName))
	fmt.Fprintf(&sb, "Thank you for booking your tickets to %s gaming convention!\n\n", event)
	sb.WriteString("Here are your booking details:\n\n")
	fmt.Fprintf(&sb, "Ticket ID: %d\n", bookingID)
	fmt.Fprintf(&sb, "Name: %s\n", d.Get(dialog.FieldName))
	fmt.Fprintf(&sb, "Email: %s\n", d.Get(dialog.FieldEmail))
	fmt.Fprintf(&sb, "Phone: %s\n", d.Get(dialog.FieldPhone))
	fmt.Fprintf(&sb, "Ticket Type: %s\n", ticket.Title())
	fmt.Fprintf(&sb, "Days Attending: %s day(s)%s\n\n", d.Get(dialog.FieldDaysAttending), betaInfo)
	fmt.Fprintf(&sb, "%s is a 3-day gaming convention where you can:\n", event)
	sb.WriteString("- Enjoy new games and LAN gaming sessions\n")
	sb.WriteString("- Learn about the latest technology in the gaming industry\n")
	sb.WriteString("- Connect with fellow gamers and industry professionals\n\n")
	sb.WriteString("We look forward to seeing you at the convention!\n\n")
	sb.WriteString("Best regards,\n")
	fmt.Fprintf(&sb, "%s Team\n", event)

	return sb.String()
}
