package notify

import (
	"fmt"
	"html"

	"campuscare-admin/internal/models"
)

// Notifies reports whether a change to status is worth telling the reporter.
func Notifies(status models.Status) bool {
	return status == models.StatusResolved || status == models.StatusRejected
}

func statusLabel(status models.Status) string {
	for _, opt := range models.Statuses {
		if opt.Value == string(status) {
			return opt.Label
		}
	}
	return string(status)
}

// StatusMessage builds the reporter e-mail for a status change.
func StatusMessage(c models.Complaint, status models.Status, notes string) Message {
	label := statusLabel(status)
	if notes == "" {
		notes = c.ResolutionNotes
	}

	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
			<h2 style="color: #333;">Your complaint was updated</h2>
			<p>Hi %s,</p>
			<p>Your complaint <strong>%s</strong> (%s) is now <strong>%s</strong>.</p>`,
		html.EscapeString(c.UserName), html.EscapeString(c.Title), html.EscapeString(string(c.Category)), label)
	if notes != "" {
		body += fmt.Sprintf(`
			<p style="color: #555;">Notes from the campus team: %s</p>`, html.EscapeString(notes))
	}
	body += `
			<p style="color: #aaa; font-size: 12px;">CampusCare, Sharda University</p>
		</div>`

	return Message{
		To:      c.UserEmail,
		Subject: fmt.Sprintf("Complaint %s: %s", label, c.Title),
		HTML:    body,
	}
}
