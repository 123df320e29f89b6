package notify_test

import (
	"context"
	"testing"

	"campuscare-admin/internal/logging"
	"campuscare-admin/internal/models"
	"campuscare-admin/internal/notify"

	"github.com/stretchr/testify/assert"
)

func TestNotifies(t *testing.T) {
	assert.True(t, notify.Notifies(models.StatusResolved))
	assert.True(t, notify.Notifies(models.StatusRejected))
	assert.False(t, notify.Notifies(models.StatusInProgress))
	assert.False(t, notify.Notifies(models.StatusSubmitted))
}

func TestStatusMessage(t *testing.T) {
	c := models.Complaint{
		UserName:  "Priya <Patel>",
		UserEmail: "priya.patel@sharda.ac.in",
		Title:     "Food Quality Issue",
		Category:  models.CategoryMess,
	}

	msg := notify.StatusMessage(c, models.StatusResolved, "Food replaced")
	assert.Equal(t, "priya.patel@sharda.ac.in", msg.To)
	assert.Equal(t, "Complaint Resolved: Food Quality Issue", msg.Subject)
	assert.Contains(t, msg.HTML, "Priya &lt;Patel&gt;")
	assert.Contains(t, msg.HTML, "Food replaced")

	c.ResolutionNotes = "earlier note"
	msg = notify.StatusMessage(c, models.StatusRejected, "")
	assert.Contains(t, msg.HTML, "earlier note")
	assert.Contains(t, msg.Subject, "Rejected")
}

func TestLogNotifier(t *testing.T) {
	n := notify.NewLogNotifier(logging.Discard())
	assert.NoError(t, n.Publish(context.Background(), notify.Message{To: "a@b.c"}))
}
