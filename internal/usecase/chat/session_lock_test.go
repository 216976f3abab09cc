package chat

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-assistant/internal/infra/memory"
)

func TestProcessMessage_ConcurrentTurnsKeepEveryMessage(t *testing.T) {
	const turns = 20

	h := newHarness()
	h.uc = NewProcessMessage(Deps{
		Store:   h.store,
		Confirm: h.confirm,
		LLM:     h.llm,
		RAG:     h.rag,
		Search:  h.search,
		Mailer:  h.mailer,
		Queue:   h.queue,
	}, Options{EventName: "Gates Of Argonath", MaxMessages: 2 * turns}, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.uc.Execute(context.Background(), "s1", "What is esports?")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	sess, err := h.store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, sess.Messages, 2*turns)
	assert.Equal(t, memory.RoleUser, sess.Messages[0].Role)
	assert.Equal(t, 0, h.uc.locks.len())
}

func TestSessionLocks_IndependentSessions(t *testing.T) {
	l := newSessionLocks()

	unlockA := l.lock("a")
	unlockB := l.lock("b")
	assert.Equal(t, 2, l.len())

	unlockA()
	unlockB()
	assert.Equal(t, 0, l.len())
}
