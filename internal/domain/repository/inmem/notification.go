package inmem

import (
	"context"

	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
)

type notificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotifications(_ context.Context, notifications []model.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, n := range notifications {
		cp := n
		r.db.notifications = append(r.db.notifications, &cp)
	}
	return nil
}

func (r *notificationRepository) ListByUser(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var result []model.Notification
	for i := len(r.db.notifications) - 1; i >= 0 && len(result) < limit; i-- {
		if r.db.notifications[i].UserID == userID {
			result = append(result, *r.db.notifications[i])
		}
	}
	return result, nil
}

func (r *notificationRepository) CountByUser(_ context.Context, userID string) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for _, n := range r.db.notifications {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}
