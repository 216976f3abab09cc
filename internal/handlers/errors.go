package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
)

var businessMessages = map[string]string{
	"booking_not_found":  "Booking not found.",
	"invalid_state":      "Booking cannot be cancelled.",
	"missing_fields":     "Missing required fields.",
	"invalid_email":      "Invalid email format.",
	"invalid_name":       "Please provide your actual name, not a ticket type.",
	"invalid_file_type":  "Only PDF files are accepted.",
	"pdf_extract_failed": "Could not read the PDF.",
	"no_text_extracted":  "No text extracted from PDF.",
}

// writeError maps business codes to 4xx and everything else to 500.
func writeError(c *gin.Context, err error) {
	code, ok := httperr.AsBusiness(err)
	if !ok {
		_ = c.Error(err)
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = code
	}

	httperr.Write(c, httperr.StatusFor(code), code, msg)
}
