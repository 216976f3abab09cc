package memory

import (
	"context"
	"encoding/json"
	"sync"
)

// InProcessStore keeps sessions in a map. Used when REDIS_ADDR is empty.
type InProcessStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewInProcessStore() *InProcessStore {
	return &InProcessStore{sessions: make(map[string][]byte)}
}

func (s *InProcessStore) Load(_ context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return NewSession(sessionID), nil
	}

	// stored as JSON so callers never share state with the map
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.Flow == nil {
		sess.Flow = NewSession(sessionID).Flow
	}
	return &sess, nil
}

func (s *InProcessStore) Save(_ context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = b
	s.mu.Unlock()
	return nil
}

func (s *InProcessStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

var _ Store = (*InProcessStore)(nil)
