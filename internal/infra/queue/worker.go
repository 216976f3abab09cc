package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// HandleEmailTask resends a queued confirmation. A returned error makes asynq
// retry with backoff until MaxRetry is exhausted.
func HandleEmailTask(m sender, log *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Error("invalid email payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := m.Send(ctx, p.To, p.Subject, p.Body); err != nil {
			log.Warn("email retry failed", zap.Uint("booking_id", p.BookingID), zap.Error(err))
			return err
		}

		log.Info("confirmation email sent from queue", zap.Uint("booking_id", p.BookingID))
		return nil
	}
}

type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log *zap.Logger
}

func NewWorker(opt asynq.RedisClientOpt, m sender, log *zap.Logger) *Worker {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailConfirmation, HandleEmailTask(m, log))

	return &Worker{srv: srv, mux: mux, log: log}
}

// Start runs the worker in the background.
func (w *Worker) Start() error {
	if err := w.srv.Start(w.mux); err != nil {
		return fmt.Errorf("start email worker: %w", err)
	}
	w.log.Info("email retry worker started")
	return nil
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
