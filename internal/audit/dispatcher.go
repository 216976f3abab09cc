package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	SessionID string
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

type sink interface {
	Log(ctx context.Context, ev Event) error
}

// Dispatcher writes audit events off the request path. Events are dropped
// when the queue is full; auditing never fails a request.
type Dispatcher struct {
	sink  sink
	log   *zap.Logger
	queue chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(s sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  s,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}
