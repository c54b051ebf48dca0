package notify

import (
	"context"
	"sync"
	"time"

	"log/slog"
)

type Queue struct {
	sender  Sender
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Message
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Message, n)
		}
	}
}
func WithSendTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewQueue(sender Sender, logger *slog.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		sender:  sender,
		logger:  logger,
		workers: 2,
		timeout: 30 * time.Second,
		ch:      make(chan Message, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("notify worker started", "worker_id", workerID)

				for msg := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.sender.Send(ctx, msg)
					cancel()

					if err != nil {
						q.logger.Error("notification delivery failed", "worker_id", workerID, "subject", msg.Subject, "error", err)
					} else {
						q.logger.Info("notification delivered", "worker_id", workerID, "subject", msg.Subject, "recipients", len(msg.To))
					}
				}

				q.logger.Info("notify worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Enqueue hands a message to the workers. A full queue drops the message
// with a warning rather than blocking the caller.
func (q *Queue) Enqueue(_ context.Context, msg Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: notify queue is shutting down", "subject", msg.Subject)
		return
	}
	if msg.SubmittedAt.IsZero() {
		msg.SubmittedAt = time.Now().UTC()
	}
	select {
	case q.ch <- msg:
	default:
		q.logger.Warn("notify queue full, dropping message", "subject", msg.Subject)
	}
}

func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("notify shutdown interrupted by context")
	case <-done:
		q.logger.Info("notify queue drained, shutdown complete")
	}
}
