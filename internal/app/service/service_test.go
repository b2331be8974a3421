package service

import (
	"context"
	"testing"
	"time"

	"codetrail/internal/domain/curriculum"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"
	"codetrail/internal/domain/repository/inmem"
	"codetrail/internal/platform/lock"

	"github.com/google/uuid"
)

// captureNotifier records events instead of enqueueing them. Setting err makes
// every delivery fail.
type captureNotifier struct {
	err    error
	events []*model.NotificationEvent
}

func (n *captureNotifier) Everyone(_ context.Context, event *model.NotificationEvent) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

type testEnv struct {
	db       *inmem.DB
	users    repository.UserRepository
	subs     repository.SubmissionRepository
	teams    repository.TeamRepository
	notifier *captureNotifier

	progress    *ProgressService
	submissions *SubmissionService
	unsubmit    *UnsubmitService
	reviews     *ReviewService
	teamSvc     *TeamService
}

func exercises(slugs ...string) []curriculum.Exercise {
	exs := make([]curriculum.Exercise, 0, len(slugs))
	for _, s := range slugs {
		exs = append(exs, curriculum.Exercise{
			Slug:     s,
			Readme:   "Solve " + s + ".",
			TestFile: s + "_test",
			Tests:    "assert " + s,
		})
	}
	return exs
}

func testCatalog() curriculum.Catalog {
	return curriculum.NewCatalog("ruby",
		curriculum.Track{ID: "ruby", Name: "Ruby", Extensions: []string{"rb"}, Exercises: exercises("one", "two")},
		curriculum.Track{ID: "go", Name: "Go", Extensions: []string{"go"}, Exercises: exercises("one", "two")},
		curriculum.Track{ID: "python", Name: "Python", Extensions: []string{"py"}, Exercises: exercises("one", "two")},
		curriculum.Track{ID: "scala", Name: "Scala", Extensions: []string{"scala"}, Exercises: exercises("one", "two", "three")},
	)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := inmem.Open()
	env := &testEnv{
		db:       db,
		users:    inmem.NewUserRepository(db),
		subs:     inmem.NewSubmissionRepository(db),
		teams:    inmem.NewTeamRepository(db),
		notifier: &captureNotifier{},
	}

	catalog := testCatalog()
	transactor := inmem.NewTransactor(db)
	notifications := NewNotificationService(env.teams, env.notifier)

	env.progress = NewProgressService(catalog, env.subs)
	env.submissions = NewSubmissionService(env.subs, env.users, catalog, notifications, lock.NewLocalUserLocker(), transactor)
	env.unsubmit = NewUnsubmitService(env.subs, env.users, transactor, time.Hour)
	env.reviews = NewReviewService(env.subs, env.users, catalog, transactor)
	env.teamSvc = NewTeamService(env.teams, env.users, transactor)
	return env
}

func (env *testEnv) createUser(t *testing.T, username string, current map[string]string, completed map[string][]string) *model.User {
	t.Helper()

	if current == nil {
		current = map[string]string{}
	}
	if completed == nil {
		completed = map[string][]string{}
	}
	user := &model.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     username + "@example.com",
		Key:       username + "-key",
		Current:   current,
		Completed: completed,
	}
	if err := env.users.Create(context.Background(), user); err != nil {
		t.Fatalf("createUser(%s) failed: %v", username, err)
	}
	return user
}

func (env *testEnv) createSubmission(t *testing.T, user *model.User, track, slug, code string, state model.SubmissionState, createdAt time.Time) *model.Submission {
	t.Helper()

	sub := &model.Submission{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Track:     track,
		Slug:      slug,
		Code:      code,
		State:     state,
		CreatedAt: createdAt,
	}
	if err := env.subs.CreateSubmission(context.Background(), nil, sub); err != nil {
		t.Fatalf("createSubmission(%s/%s) failed: %v", track, slug, err)
	}
	return sub
}

func (env *testEnv) createTeam(t *testing.T, name string, creator *model.User, members ...*model.User) *model.Team {
	t.Helper()

	usernames := make([]string, 0, len(members))
	for _, m := range members {
		usernames = append(usernames, m.Username)
	}
	team, err := env.teamSvc.CreateTeam(context.Background(), creator.ID, CreateTeamRequest{
		Name:    name,
		Members: usernames,
	})
	if err != nil {
		t.Fatalf("createTeam(%s) failed: %v", name, err)
	}
	return team
}
