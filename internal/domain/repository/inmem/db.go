// Package inmem provides in-memory repository implementations backing tests
// and local development without PostgreSQL.
package inmem

import (
	"context"
	"database/sql"
	"sync"

	"codetrail/internal/domain/model"
)

// DB is a process-local store shared by the in-memory repositories.
type DB struct {
	mu sync.RWMutex

	users         map[string]*model.User
	submissions   []*model.Submission
	teams         map[string]*model.Team
	notifications []*model.Notification
}

func Open() *DB {
	return &DB{
		users: make(map[string]*model.User),
		teams: make(map[string]*model.Team),
	}
}

// Transactor satisfies repository.Transactor; the store has no transactions,
// the callback just runs under the store lock with a nil tx.
type Transactor struct {
	db *DB
}

func NewTransactor(db *DB) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTx(_ context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func copyUser(u *model.User) *model.User {
	cp := *u
	cp.Current = make(map[string]string, len(u.Current))
	for k, v := range u.Current {
		cp.Current[k] = v
	}
	cp.Completed = make(map[string][]string, len(u.Completed))
	for k, v := range u.Completed {
		cp.Completed[k] = append([]string(nil), v...)
	}
	return &cp
}

func copySubmission(s *model.Submission) *model.Submission {
	cp := *s
	return &cp
}
