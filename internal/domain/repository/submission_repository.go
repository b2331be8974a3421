package repository

import (
	"context"
	"database/sql"
	"errors"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"
)

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, tx *sql.Tx, sub *model.Submission) error
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	// LatestByUser returns the user's most recently created submission across
	// all exercises, or common.ErrNotFound.
	LatestByUser(ctx context.Context, userID string) (*model.Submission, error)
	// LatestByUserTrack is LatestByUser scoped to one track, excluding id.
	LatestByUserTrack(ctx context.Context, userID, track, excludeID string) (*model.Submission, error)
	DeleteSubmission(ctx context.Context, tx *sql.Tx, id string) error
	// UpdateReview applies an external evaluation result: lifecycle state and
	// outstanding nit count.
	UpdateReview(ctx context.Context, tx *sql.Tx, id string, state model.SubmissionState, nitCount int) error
	// CompletedSlugsByTrack groups the user's done submissions by track, each
	// track's slugs ordered by submission time. Tracks without completions
	// are absent.
	CompletedSlugsByTrack(ctx context.Context, userID string) (map[string][]string, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) CreateSubmission(ctx context.Context, tx *sql.Tx, sub *model.Submission) error {
	query := `INSERT INTO submissions (id, user_id, track, slug, code, state, nit_count, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, sub.ID, sub.UserID, sub.Track, sub.Slug, sub.Code, sub.State, sub.NitCount, sub.CreatedAt)
	} else {
		_, err = r.db.ExecContext(ctx, query, sub.ID, sub.UserID, sub.Track, sub.Slug, sub.Code, sub.State, sub.NitCount, sub.CreatedAt)
	}
	if err != nil {
		return common.Errorf("pgSubmissionRepository.CreateSubmission: %w", err)
	}
	return nil
}

const submissionColumns = `id, user_id, track, slug, code, state, nit_count, created_at, updated_at`

func (r *pgSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "GetSubmissionByID")
}

func (r *pgSubmissionRepository) LatestByUser(ctx context.Context, userID string) (*model.Submission, error) {
	// id breaks ties between submissions created in the same microsecond.
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID), "LatestByUser")
}

func (r *pgSubmissionRepository) LatestByUserTrack(ctx context.Context, userID, track, excludeID string) (*model.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
	          WHERE user_id = $1 AND track = $2 AND id <> $3
	          ORDER BY created_at DESC, id DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, track, excludeID), "LatestByUserTrack")
}

func (r *pgSubmissionRepository) scanOne(row *sql.Row, op string) (*model.Submission, error) {
	sub := &model.Submission{}
	err := row.Scan(&sub.ID, &sub.UserID, &sub.Track, &sub.Slug, &sub.Code, &sub.State, &sub.NitCount, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.Errorf("pgSubmissionRepository.%s: %w", op, err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) DeleteSubmission(ctx context.Context, tx *sql.Tx, id string) error {
	query := `DELETE FROM submissions WHERE id = $1`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, id)
	} else {
		_, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return common.Errorf("pgSubmissionRepository.DeleteSubmission: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) UpdateReview(ctx context.Context, tx *sql.Tx, id string, state model.SubmissionState, nitCount int) error {
	query := `UPDATE submissions SET state = $1, nit_count = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, state, nitCount, id)
	} else {
		_, err = r.db.ExecContext(ctx, query, state, nitCount, id)
	}
	if err != nil {
		return common.Errorf("pgSubmissionRepository.UpdateReview: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) CompletedSlugsByTrack(ctx context.Context, userID string) (map[string][]string, error) {
	query := `SELECT track, slug FROM submissions
	          WHERE user_id = $1 AND state = $2
	          ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, model.SubmissionDone)
	if err != nil {
		return nil, common.Errorf("pgSubmissionRepository.CompletedSlugsByTrack query: %w", err)
	}
	defer rows.Close()

	completed := map[string][]string{}
	for rows.Next() {
		var track, slug string
		if err := rows.Scan(&track, &slug); err != nil {
			return nil, common.Errorf("pgSubmissionRepository.CompletedSlugsByTrack scan: %w", err)
		}
		completed[track] = append(completed[track], slug)
	}
	if err = rows.Err(); err != nil {
		return nil, common.Errorf("pgSubmissionRepository.CompletedSlugsByTrack rows.Err: %w", err)
	}
	return completed, nil
}
