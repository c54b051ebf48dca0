// Package notify delivers fleet event notifications. Delivery is
// fire-and-forget: enqueueing never blocks request handling and failures
// are logged, not returned.
package notify

import (
	"context"
	"time"
)

// Message is one notification to deliver.
type Message struct {
	To          []string
	Subject     string
	Body        string
	SubmittedAt time.Time
}

// Sender delivers a single message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
