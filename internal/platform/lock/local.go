package lock

import (
	"context"
	"sync"
)

// localUserLocker is an in-process UserLocker for single-node deployments
// and tests.
type localUserLocker struct {
	mu    sync.Mutex
	users map[string]*sync.Mutex
}

func NewLocalUserLocker() UserLocker {
	return &localUserLocker{users: make(map[string]*sync.Mutex)}
}

func (l *localUserLocker) Lock(_ context.Context, userID string) (func(), error) {
	l.mu.Lock()
	m, ok := l.users[userID]
	if !ok {
		m = &sync.Mutex{}
		l.users[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
