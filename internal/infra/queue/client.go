package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EmailQueue schedules confirmation email retries.
type EmailQueue struct {
	client enqueuer
	log    *zap.Logger
}

func NewEmailQueue(client *asynq.Client, log *zap.Logger) *EmailQueue {
	return &EmailQueue{client: client, log: log}
}

func (q *EmailQueue) EnqueueEmail(ctx context.Context, p EmailPayload) error {
	task, err := NewEmailTask(p)
	if err != nil {
		return fmt.Errorf("build email task: %w", err)
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(maxEmailRetry),
		asynq.Queue("default"),
	)
	if err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}

	q.log.Info("confirmation email queued for retry",
		zap.String("task_id", info.ID),
		zap.Uint("booking_id", p.BookingID),
	)
	return nil
}
