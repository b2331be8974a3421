package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_AcceptsAttempt(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)

	sub, err := env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.rb")
	require.NoError(t, err)

	assert.Equal(t, model.Exercise{Track: "ruby", Slug: "one"}, sub.Exercise())
	assert.Equal(t, model.SubmissionPending, sub.State)
	assert.Equal(t, "THE CODE", sub.Code)

	stored, err := env.subs.LatestByUser(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, stored.ID)
	assert.Equal(t, "one", alice.Current["ruby"])
}

func TestSubmit_RejectsDuplicateOfPreviousAttempt(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)

	_, err := env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.rb")
	require.NoError(t, err)

	_, err = env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.rb")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrDuplicateAttempt)
	assert.Equal(t, "This attempt is a duplicate of the previous one.", common.ErrDuplicateAttempt.Error())
}

func TestSubmit_AcceptsDifferentCodeOrExercise(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)

	_, err := env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.rb")
	require.NoError(t, err)

	// Same exercise, different code.
	_, err = env.submissions.Submit(context.Background(), alice, "OTHER CODE", "one/code.rb")
	assert.NoError(t, err)

	// Same code, different exercise.
	_, err = env.submissions.Submit(context.Background(), alice, "OTHER CODE", "two/code.rb")
	assert.NoError(t, err)
}

func TestSubmit_RejectsUnknownTrackAndExercise(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)

	_, err := env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.nosuch")
	assert.ErrorIs(t, err, common.ErrUnknownTrack)

	_, err = env.submissions.Submit(context.Background(), alice, "THE CODE", "five/code.rb")
	assert.ErrorIs(t, err, common.ErrUnknownExercise)

	// Rejected attempts leave no trace.
	_, err = env.subs.LatestByUser(context.Background(), alice.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSubmit_AcceptsResubmissionOfCompletedExercise(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice",
		map[string]string{"go": "two"},
		map[string][]string{"go": {"one"}},
	)

	sub, err := env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.go")
	require.NoError(t, err)
	assert.Equal(t, model.Exercise{Track: "go", Slug: "one"}, sub.Exercise())
}

func TestSubmit_NotifiesEachTeammateExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)
	bob := env.createUser(t, "bob", nil, nil)
	charlie := env.createUser(t, "charlie", nil, nil)
	dave := env.createUser(t, "dave", nil, nil)
	eve := env.createUser(t, "eve", nil, nil)
	outsider := env.createUser(t, "outsider", nil, nil)

	env.createTeam(t, "team one", alice, bob, charlie)
	env.createTeam(t, "team two", alice, bob, dave, eve)

	_, err := env.submissions.Submit(context.Background(), bob, "THE CODE", "one/code.rb")
	require.NoError(t, err)

	// A single notifier invocation per submission event.
	require.Len(t, env.notifier.events, 1)
	event := env.notifier.events[0]
	assert.Equal(t, "bob", event.Actor)
	assert.ElementsMatch(t, []string{alice.ID, charlie.ID, dave.ID, eve.ID}, event.RecipientIDs)
	assert.NotContains(t, event.RecipientIDs, bob.ID)
	assert.NotContains(t, event.RecipientIDs, outsider.ID)
}

func TestSubmit_ConcurrentIdenticalAttemptsAdmitExactlyOne(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.rb")
		}(i)
	}
	wg.Wait()

	accepted, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, common.ErrDuplicateAttempt):
			duplicates++
		default:
			t.Fatalf("unexpected submit error: %v", err)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, attempts-1, duplicates)
}

func TestSubmit_NotifierFailureDoesNotFailSubmission(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)
	bob := env.createUser(t, "bob", nil, nil)
	env.createTeam(t, "pair", alice, bob)
	env.notifier.err = errors.New("queue unavailable")

	sub, err := env.submissions.Submit(context.Background(), bob, "THE CODE", "one/code.rb")
	require.NoError(t, err)

	stored, err := env.subs.GetSubmissionByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, stored.State)
	assert.Equal(t, "one", bob.Current["ruby"])
	assert.Empty(t, env.notifier.events)
}

func TestSubmit_NoTeamsMeansNoNotifierInvocation(t *testing.T) {
	env := newTestEnv(t)
	loner := env.createUser(t, "loner", nil, nil)

	_, err := env.submissions.Submit(context.Background(), loner, "THE CODE", "one/code.rb")
	require.NoError(t, err)
	assert.Empty(t, env.notifier.events)
}
