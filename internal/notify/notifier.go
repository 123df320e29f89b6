package notify

import "context"

// Message is one notification to a complaint reporter.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier defines the interface for delivering reporter notifications.
// This abstraction allows swapping the log notifier with real e-mail delivery.
type Notifier interface {
	Publish(ctx context.Context, msg Message) error
}
