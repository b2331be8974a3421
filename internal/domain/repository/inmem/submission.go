package inmem

import (
	"context"
	"database/sql"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
)

type submissionRepository struct {
	db *DB
}

func NewSubmissionRepository(db *DB) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateSubmission(_ context.Context, _ *sql.Tx, sub *model.Submission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.submissions = append(r.db.submissions, copySubmission(sub))
	return nil
}

func (r *submissionRepository) GetSubmissionByID(_ context.Context, id string) (*model.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.submissions {
		if s.ID == id {
			return copySubmission(s), nil
		}
	}
	return nil, common.ErrNotFound
}

// LatestByUser relies on append order: submissions are stored in creation
// order, so the newest match is the last one.
func (r *submissionRepository) LatestByUser(_ context.Context, userID string) (*model.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for i := len(r.db.submissions) - 1; i >= 0; i-- {
		if r.db.submissions[i].UserID == userID {
			return copySubmission(r.db.submissions[i]), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *submissionRepository) LatestByUserTrack(_ context.Context, userID, track, excludeID string) (*model.Submission, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for i := len(r.db.submissions) - 1; i >= 0; i-- {
		s := r.db.submissions[i]
		if s.UserID == userID && s.Track == track && s.ID != excludeID {
			return copySubmission(s), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *submissionRepository) DeleteSubmission(_ context.Context, _ *sql.Tx, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, s := range r.db.submissions {
		if s.ID == id {
			r.db.submissions = append(r.db.submissions[:i], r.db.submissions[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *submissionRepository) UpdateReview(_ context.Context, _ *sql.Tx, id string, state model.SubmissionState, nitCount int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, s := range r.db.submissions {
		if s.ID == id {
			s.State = state
			s.NitCount = nitCount
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *submissionRepository) CompletedSlugsByTrack(_ context.Context, userID string) (map[string][]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	completed := map[string][]string{}
	for _, s := range r.db.submissions {
		if s.UserID == userID && s.State == model.SubmissionDone {
			completed[s.Track] = append(completed[s.Track], s.Slug)
		}
	}
	return completed, nil
}
