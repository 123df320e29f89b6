package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogNotifier implements the Notifier interface by logging messages.
// It is used when no e-mail provider is configured.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Publish(ctx context.Context, msg Message) error {
	n.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("notification (not sent, no e-mail provider configured)")
	return nil
}
