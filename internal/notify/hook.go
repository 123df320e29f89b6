package notify

import (
	"context"
	"time"

	"campuscare-admin/internal/models"

	"github.com/sirupsen/logrus"
)

const publishTimeout = 10 * time.Second

// StatusHook returns a status-change callback that tells the reporter about
// resolved and rejected complaints. Delivery runs in the background.
func StatusHook(n Notifier, log *logrus.Logger) func(models.Complaint, models.Status, string) {
	return func(c models.Complaint, status models.Status, notes string) {
		if !Notifies(status) || c.UserEmail == "" {
			return
		}
		msg := StatusMessage(c, status, notes)

		// Fire notification in a background goroutine (non-blocking)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			if err := n.Publish(ctx, msg); err != nil {
				log.WithError(err).WithField("complaint", c.ID).Error("error publishing status notification")
			}
		}()
	}
}
