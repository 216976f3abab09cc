package chat

const (
	StatusInfo    = "info"
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

const (
	ToolBooking   = "booking"
	ToolRAG       = "rag"
	ToolWebSearch = "web_search"
)

type Reply struct {
	Response  string `json:"response"`
	ToolUsed  string `json:"tool_used,omitempty"`
	Status    string `json:"status"`
	BookingID *uint  `json:"booking_id,omitempty"`
	EmailSent *bool  `json:"email_sent,omitempty"`
}

func info(msg string) *Reply {
	return &Reply{Response: msg, Status: StatusInfo}
}
