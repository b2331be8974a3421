package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"codetrail/internal/common"
	"codetrail/internal/domain/curriculum"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
	"codetrail/internal/platform/lock"

	"github.com/google/uuid"
)

// SubmissionService validates and records submission attempts.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	catalog        curriculum.Catalog
	notifications  *NotificationService
	locker         lock.UserLocker
	transactor     repository.Transactor
}

func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	catalog curriculum.Catalog,
	notifications *NotificationService,
	locker lock.UserLocker,
	transactor repository.Transactor,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		userRepo:       userRepo,
		catalog:        catalog,
		notifications:  notifications,
		locker:         locker,
		transactor:     transactor,
	}
}

// Submit validates an attempt at the exercise encoded in path
// ("slug/filename.ext", extension selects the track) and persists it as a
// pending submission. Validation failures short-circuit before anything is
// written. The duplicate check and the insert run under a per-user lock so
// two identical concurrent attempts cannot both pass.
func (s *SubmissionService) Submit(ctx context.Context, user *model.User, code, path string) (*model.Submission, error) {
	track, slug, err := s.resolveExercise(path)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Lock(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	latest, err := s.submissionRepo.LatestByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if latest != nil && latest.IsDuplicateOf(track, slug, code) {
		return nil, common.ErrDuplicateAttempt
	}

	submission := &model.Submission{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Track:     track,
		Slug:      slug,
		Code:      code,
		State:     model.SubmissionPending,
		CreatedAt: time.Now().UTC(),
	}

	err = s.transactor.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.submissionRepo.CreateSubmission(ctx, tx, submission); err != nil {
			return err
		}
		if user.Current == nil {
			user.Current = map[string]string{}
		}
		user.Current[track] = slug
		return s.userRepo.SaveProgress(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: a notification failure must not fail the submission.
	if err := s.notifications.NotifySubmission(ctx, user, submission); err != nil {
		log.Printf("ERROR: Failed to notify teammates about submission %s: %v", submission.ID, err)
	}

	return submission, nil
}

// resolveExercise maps "slug/filename.ext" to a (track, slug) pair via the
// catalog. Completion state does not block resubmission, so only existence
// is checked here.
func (s *SubmissionService) resolveExercise(path string) (track, slug string, err error) {
	slug, filename, found := strings.Cut(path, "/")
	if !found || slug == "" {
		return "", "", common.ErrUnknownExercise
	}
	dot := strings.LastIndex(filename, ".")
	if dot < 0 || dot == len(filename)-1 {
		return "", "", common.ErrUnknownTrack
	}
	ext := filename[dot+1:]

	track, ok := s.catalog.TrackForExtension(ext)
	if !ok {
		return "", "", common.ErrUnknownTrack
	}
	if !s.catalog.ExerciseExists(track, slug) {
		return "", "", common.ErrUnknownExercise
	}
	return track, slug, nil
}
