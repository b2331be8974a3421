package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
)

// UnsubmitService reverses a user's most recent pending submission.
type UnsubmitService struct {
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	transactor     repository.Transactor
	window         time.Duration
	now            func() time.Time
}

func NewUnsubmitService(
	subRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	transactor repository.Transactor,
	window time.Duration,
) *UnsubmitService {
	return &UnsubmitService{
		submissionRepo: subRepo,
		userRepo:       userRepo,
		transactor:     transactor,
		window:         window,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Unsubmit deletes the user's most recent submission and rolls the per-track
// pointer back as if the attempt never happened. The rejection checks run in
// a fixed order: existence, completion, nits, age.
func (s *UnsubmitService) Unsubmit(ctx context.Context, user *model.User) error {
	latest, err := s.submissionRepo.LatestByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNothingToUnsubmit
		}
		return err
	}
	if latest.State == model.SubmissionDone {
		return common.ErrSubmissionDone
	}
	if latest.NitCount > 0 {
		return common.ErrSubmissionHasNits
	}
	if s.now().Sub(latest.CreatedAt) > s.window {
		return common.ErrSubmissionTooOld
	}

	return s.transactor.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.submissionRepo.DeleteSubmission(ctx, tx, latest.ID); err != nil {
			return err
		}

		prev, err := s.submissionRepo.LatestByUserTrack(ctx, user.ID, latest.Track, latest.ID)
		switch {
		case err == nil:
			user.Current[latest.Track] = prev.Slug
		case errors.Is(err, common.ErrNotFound):
			delete(user.Current, latest.Track)
		default:
			return err
		}
		return s.userRepo.SaveProgress(ctx, tx, user)
	})
}
