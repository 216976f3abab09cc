package memory

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-assistant/internal/domain/dialog"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is everything the assistant remembers about one conversation.
type Session struct {
	ID       string       `json:"session_id"`
	Messages []Message    `json:"messages"`
	Flow     *dialog.Flow `json:"flow"`
}

func NewSession(id string) *Session {
	return &Session{ID: id, Flow: dialog.NewFlow()}
}

// Append adds a message and drops the oldest ones beyond max.
func (s *Session) Append(role, content string, max int) {
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	if max > 0 && len(s.Messages) > max {
		s.Messages = append([]Message(nil), s.Messages[len(s.Messages)-max:]...)
	}
}

// Recent returns at most n of the latest messages.
func (s *Session) Recent(n int) []Message {
	if n <= 0 || len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

type Store interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context, sessionID string) error
}
