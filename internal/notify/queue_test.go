package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestQueueDeliversAll(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	q := NewQueue(sender, nil, WithWorkers(3), WithQueueSize(16))

	for i := 0; i < 10; i++ {
		q.Enqueue(context.Background(), Message{
			To:      []string{"ops@example.com"},
			Subject: "truck registered",
		})
	}
	q.Shutdown(context.Background())

	assert.Equal(t, 10, sender.count())
}

func TestQueueSenderFailureDoesNotPropagate(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{err: errors.New("smtp down")}
	q := NewQueue(sender, nil, WithWorkers(1))

	// Enqueue never reports the sender's failure.
	q.Enqueue(context.Background(), Message{Subject: "doomed"})
	q.Shutdown(context.Background())

	assert.Equal(t, 1, sender.count())
}

func TestQueueEnqueueAfterShutdown(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	q := NewQueue(sender, nil, WithWorkers(1))
	q.Shutdown(context.Background())

	// Must not panic on the closed channel.
	q.Enqueue(context.Background(), Message{Subject: "late"})
	assert.Equal(t, 0, sender.count())
}

func TestQueueStampsSubmittedAt(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	q := NewQueue(sender, nil, WithWorkers(1))
	q.Enqueue(context.Background(), Message{Subject: "stamped"})
	q.Shutdown(context.Background())

	require.Equal(t, 1, sender.count())
	assert.WithinDuration(t, time.Now().UTC(), sender.sent[0].SubmittedAt, time.Minute)
}
