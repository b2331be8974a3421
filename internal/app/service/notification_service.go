package service

import (
	"context"

	"codetrail/internal/domain/model"
	"codetrail/internal/domain/notify"
	"codetrail/internal/domain/repository"
)

// NotificationService computes the fan-out set for a submission and triggers
// the notifier once per submission event.
type NotificationService struct {
	teamRepo repository.TeamRepository
	notifier notify.Notifier
}

func NewNotificationService(teamRepo repository.TeamRepository, notifier notify.Notifier) *NotificationService {
	return &NotificationService{teamRepo: teamRepo, notifier: notifier}
}

// NotifySubmission notifies every distinct teammate of the submitter across
// all their teams, exactly once per recipient. The recipient set is
// accumulated over all teams before dispatch, so a member of two shared
// teams still gets a single notification.
func (s *NotificationService) NotifySubmission(ctx context.Context, submitter *model.User, sub *model.Submission) error {
	teams, err := s.teamRepo.TeamsForUser(ctx, submitter.ID)
	if err != nil {
		return err
	}

	seen := map[string]bool{submitter.ID: true}
	var recipients []string
	add := func(userID string) {
		if !seen[userID] {
			seen[userID] = true
			recipients = append(recipients, userID)
		}
	}
	for _, team := range teams {
		add(team.CreatorID)
		for _, member := range team.Members {
			add(member.UserID)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	return s.notifier.Everyone(ctx, &model.NotificationEvent{
		SubmissionID: sub.ID,
		Actor:        submitter.Username,
		Track:        sub.Track,
		Slug:         sub.Slug,
		RecipientIDs: recipients,
	})
}
