package service

import (
	"context"
	"database/sql"

	"codetrail/internal/common"
	"codetrail/internal/domain/curriculum"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
)

// ReviewService applies evaluation results pushed by the external reviewer:
// marking submissions done (which advances the user's progress) or attaching
// nits that block unsubmit.
type ReviewService struct {
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	catalog        curriculum.Catalog
	transactor     repository.Transactor
}

func NewReviewService(
	subRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	catalog curriculum.Catalog,
	transactor repository.Transactor,
) *ReviewService {
	return &ReviewService{
		submissionRepo: subRepo,
		userRepo:       userRepo,
		catalog:        catalog,
		transactor:     transactor,
	}
}

type ReviewResultRequest struct {
	SubmissionID string `json:"submission_id"`
	Done         bool   `json:"done"`
	NitCount     int    `json:"nit_count"`
}

func (r ReviewResultRequest) state() model.SubmissionState {
	if r.Done {
		return model.SubmissionDone
	}
	return model.SubmissionPending
}

// HandleReviewResult records the outcome of an external evaluation. A done
// verdict completes the exercise for the user and moves their per-track
// pointer to the next one on the trail.
func (s *ReviewService) HandleReviewResult(ctx context.Context, req ReviewResultRequest) error {
	if req.SubmissionID == "" {
		return common.ErrBadRequest
	}
	submission, err := s.submissionRepo.GetSubmissionByID(ctx, req.SubmissionID)
	if err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(ctx, submission.UserID)
	if err != nil {
		return err
	}

	return s.transactor.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.submissionRepo.UpdateReview(ctx, tx, submission.ID, req.state(), req.NitCount); err != nil {
			return err
		}
		if !req.Done {
			return nil
		}

		user.Complete(submission.Track, submission.Slug)
		if user.Current[submission.Track] == submission.Slug {
			if next, ok := s.catalog.NextAfter(submission.Track, submission.Slug); ok {
				user.Current[submission.Track] = next
			} else {
				delete(user.Current, submission.Track) // trail finished
			}
		}
		return s.userRepo.SaveProgress(ctx, tx, user)
	})
}
