package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-assistant/internal/domain/dialog"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/memory"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/queue"
	"github.com/BruksfildServices01/booking-assistant/internal/infra/websearch"
	"github.com/BruksfildServices01/booking-assistant/internal/metrics"
	bookinguc "github.com/BruksfildServices01/booking-assistant/internal/usecase/booking"
)

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type retriever interface {
	RelevantContext(ctx context.Context, query string, k int) string
}

type searcher interface {
	Search(ctx context.Context, query string) (*websearch.Result, error)
}

type sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type retryQueue interface {
	EnqueueEmail(ctx context.Context, p queue.EmailPayload) error
}

type confirmer interface {
	Execute(ctx context.Context, sessionID string, draft dialog.Draft) (*bookinguc.ConfirmResult, error)
}

type Options struct {
	EventName       string
	MaxMessages     int
	ContextMessages int
	RAGTopK         int
}

// Deps groups the collaborators of ProcessMessage. Queue may be nil.
type Deps struct {
	Store   memory.Store
	Confirm confirmer
	LLM     generator
	RAG     retriever
	Search  searcher
	Mailer  sender
	Queue   retryQueue
}

type ProcessMessage struct {
	deps  Deps
	opts  Options
	log   *zap.Logger
	locks *sessionLocks
}

func NewProcessMessage(deps Deps, opts Options, log *zap.Logger) *ProcessMessage {
	if opts.MaxMessages <= 0 {
		opts.MaxMessages = 25
	}
	if opts.ContextMessages <= 0 {
		opts.ContextMessages = 10
	}
	if opts.RAGTopK <= 0 {
		opts.RAGTopK = 3
	}
	return &ProcessMessage{deps: deps, opts: opts, log: log, locks: newSessionLocks()}
}

func (uc *ProcessMessage) Execute(
	ctx context.Context,
	sessionID string,
	message string,
) (*Reply, error) {

	start := time.Now()
	defer metrics.ObserveChat(start)

	// load, mutate and save must not interleave for one session
	unlock := uc.locks.lock(sessionID)
	defer unlock()

	sess, err := uc.deps.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Append(memory.RoleUser, message, uc.opts.MaxMessages)

	intent := dialog.DetectIntent(message, uc.opts.EventName)
	metrics.IncMessage(string(intent))

	var reply *Reply
	if intent == dialog.IntentBooking || sess.Flow.State != dialog.StateIdle {
		reply = uc.handleBooking(ctx, sess, message)
	} else {
		reply = uc.handleGeneral(ctx, sess, message)
	}

	sess.Append(memory.RoleAssistant, reply.Response, uc.opts.MaxMessages)
	if err := uc.deps.Store.Save(ctx, sess); err != nil {
		uc.log.Warn("session save failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	return reply, nil
}
