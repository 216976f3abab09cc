package chat

import (
	"context"

	"github.com/BruksfildServices01/booking-assistant/internal/infra/memory"
)

type ResetConversation struct {
	store memory.Store
}

func NewResetConversation(store memory.Store) *ResetConversation {
	return &ResetConversation{store: store}
}

// Execute forgets the message history and any booking in progress.
func (uc *ResetConversation) Execute(ctx context.Context, sessionID string) error {
	return uc.store.Clear(ctx, sessionID)
}

type GetHistory struct {
	store memory.Store
}

func NewGetHistory(store memory.Store) *GetHistory {
	return &GetHistory{store: store}
}

func (uc *GetHistory) Execute(ctx context.Context, sessionID string) ([]memory.Message, error) {
	sess, err := uc.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Messages == nil {
		return []memory.Message{}, nil
	}
	return sess.Messages, nil
}
