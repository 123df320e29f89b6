package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

// ResendNotifier delivers notifications as e-mail through Resend.
type ResendNotifier struct {
	client *resend.Client
	from   string
	log    *logrus.Logger
}

func NewResendNotifier(apiKey, from string, log *logrus.Logger) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

func (n *ResendNotifier) Publish(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	n.log.WithFields(logrus.Fields{"id": sent.Id, "to": msg.To}).Info("status e-mail sent")
	return nil
}
