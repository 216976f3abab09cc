package booking

import "strings"

type TicketType string

const (
	TicketStandard TicketType = "standard"
	TicketVIP      TicketType = "vip"
	TicketStudent  TicketType = "student"
	TicketGroup    TicketType = "group"
)

// Title is the display form used in booking types, notes and emails.
func (t TicketType) Title() string {
	switch t {
	case TicketVIP:
		return "Vip"
	case "":
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ticketWords are the words a customer name must never be.
var ticketWords = map[string]struct{}{
	"vip": {}, "standard": {}, "student": {}, "group": {},
	"premium": {}, "deluxe": {}, "basic": {}, "regular": {},
}

func IsTicketWord(s string) bool {
	_, ok := ticketWords[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
