package model

import "time"

// Notification is one inbox entry telling a teammate about a submission.
type Notification struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"` // Recipient
	SubmissionID string    `json:"submission_id"`
	Actor        string    `json:"actor"` // Submitter's username
	Track        string    `json:"track"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
}

// NotificationEvent is the queued fan-out payload: one event per submission,
// carrying the full deduplicated recipient set.
type NotificationEvent struct {
	SubmissionID string   `json:"submission_id"`
	Actor        string   `json:"actor"`
	Track        string   `json:"track"`
	Slug         string   `json:"slug"`
	RecipientIDs []string `json:"recipient_ids"`
}
