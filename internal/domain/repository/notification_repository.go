package repository

import (
	"context"
	"database/sql"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"
)

type NotificationRepository interface {
	CreateNotifications(ctx context.Context, notifications []model.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type pgNotificationRepository struct {
	db *sql.DB
}

func NewPgNotificationRepository(db *sql.DB) NotificationRepository {
	return &pgNotificationRepository{db: db}
}

func (r *pgNotificationRepository) CreateNotifications(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	stmt, err := r.db.PrepareContext(ctx, `INSERT INTO notifications (id, user_id, submission_id, actor, track, slug, created_at)
	                                       VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return common.Errorf("pgNotificationRepository.CreateNotifications prepare: %w", err)
	}
	defer stmt.Close()

	for _, n := range notifications {
		if _, err := stmt.ExecContext(ctx, n.ID, n.UserID, n.SubmissionID, n.Actor, n.Track, n.Slug, n.CreatedAt); err != nil {
			return common.Errorf("pgNotificationRepository.CreateNotifications exec for %s: %w", n.ID, err)
		}
	}
	return nil
}

func (r *pgNotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	query := `SELECT id, user_id, submission_id, actor, track, slug, created_at
	          FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, common.Errorf("pgNotificationRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.SubmissionID, &n.Actor, &n.Track, &n.Slug, &n.CreatedAt); err != nil {
			return nil, common.Errorf("pgNotificationRepository.ListByUser scan: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, common.Errorf("pgNotificationRepository.ListByUser rows.Err: %w", err)
	}
	return notifications, nil
}

func (r *pgNotificationRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, common.Errorf("pgNotificationRepository.CountByUser: %w", err)
	}
	return count, nil
}
