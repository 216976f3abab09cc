package validators

import (
	"regexp"
	"strings"
)

var emailFormatRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsEmailFormatValid checks the whole string against the address pattern
// used for bookings and confirmation emails.
func IsEmailFormatValid(email string) bool {
	return emailFormatRe.MatchString(strings.TrimSpace(email))
}
