package model

import "time"

type SubmissionState string

const (
	SubmissionPending SubmissionState = "pending"
	SubmissionDone    SubmissionState = "done"
)

type Submission struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Track     string          `json:"track"`
	Slug      string          `json:"slug"`
	Code      string          `json:"code"`
	State     SubmissionState `json:"state"`
	NitCount  int             `json:"nit_count"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Exercise returns the (track, slug) pair this submission targets.
func (s *Submission) Exercise() Exercise {
	return Exercise{Track: s.Track, Slug: s.Slug}
}

// IsDuplicateOf reports whether another attempt targets the same exercise
// with byte-identical code.
func (s *Submission) IsDuplicateOf(track, slug, code string) bool {
	return s.Track == track && s.Slug == slug && s.Code == code
}
