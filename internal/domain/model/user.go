package model

import (
	"time"
)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Key            string    `json:"key,omitempty"` // Opaque API key, returned once on signup
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Per-track progress. Current points at the exercise the user is working
	// on; Completed lists finished slugs in the order they were completed.
	Current   map[string]string   `json:"current"`
	Completed map[string][]string `json:"completed"`
}

// IsCompleted reports whether the user has finished the given exercise.
func (u *User) IsCompleted(track, slug string) bool {
	for _, s := range u.Completed[track] {
		if s == slug {
			return true
		}
	}
	return false
}

// Complete records slug as finished in the given track, once.
func (u *User) Complete(track, slug string) {
	if u.IsCompleted(track, slug) {
		return
	}
	if u.Completed == nil {
		u.Completed = make(map[string][]string)
	}
	u.Completed[track] = append(u.Completed[track], slug)
}
