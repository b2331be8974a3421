package service

import (
	"context"

	"codetrail/internal/domain/curriculum"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
)

// ProgressService computes what each user should be working on per track,
// and what they have already finished.
type ProgressService struct {
	catalog        curriculum.Catalog
	submissionRepo repository.SubmissionRepository
}

func NewProgressService(catalog curriculum.Catalog, subRepo repository.SubmissionRepository) *ProgressService {
	return &ProgressService{catalog: catalog, submissionRepo: subRepo}
}

// Current returns the user's current assignment per track. For each catalog
// track the recorded pointer (or the track's first exercise for a fresh user)
// is advanced past completed slugs; a track with nothing left simply drops
// out of the result.
func (s *ProgressService) Current(_ context.Context, user *model.User) (map[string]*curriculum.Assignment, error) {
	current := make(map[string]*curriculum.Assignment)
	for _, track := range s.catalog.Tracks() {
		slug, ok := user.Current[track]
		if !ok || slug == "" {
			slug, ok = s.catalog.FirstSlug(track)
			if !ok {
				continue
			}
		}
		for ok && user.IsCompleted(track, slug) {
			slug, ok = s.catalog.NextAfter(track, slug)
		}
		if !ok {
			continue // end of the trail
		}
		assignment, found := s.catalog.Assignment(track, slug)
		if !found {
			continue // stale pointer onto a retired exercise
		}
		current[track] = assignment
	}
	return current, nil
}

// Completed returns the slugs of done submissions grouped by track, ordered
// by when they were submitted. A user with no completions anywhere gets an
// empty map, not per-track empty lists.
func (s *ProgressService) Completed(ctx context.Context, user *model.User) (map[string][]string, error) {
	return s.submissionRepo.CompletedSlugsByTrack(ctx, user.ID)
}
