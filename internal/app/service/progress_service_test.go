package service

import (
	"context"
	"testing"
	"time"

	"codetrail/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent_NewUserGetsFirstExerciseOfEveryTrack(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "newbie", nil, nil)

	current, err := env.progress.Current(context.Background(), user)
	require.NoError(t, err)

	require.Len(t, current, 4)
	for _, track := range []string{"ruby", "go", "python", "scala"} {
		require.Contains(t, current, track)
		assert.Equal(t, "one", current[track].Slug)
		assert.Equal(t, track, current[track].Track)
	}
}

func TestCurrent_ReflectsRecordedPointersRegardlessOfPendingState(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice",
		map[string]string{"ruby": "one", "go": "two"},
		map[string][]string{"go": {"one"}},
	)
	now := time.Now().UTC()
	env.createSubmission(t, alice, "go", "one", "CODE", model.SubmissionDone, now.Add(-3*time.Minute))
	env.createSubmission(t, alice, "go", "two", "CODE", model.SubmissionPending, now.Add(-2*time.Minute))
	env.createSubmission(t, alice, "ruby", "one", "CODE", model.SubmissionPending, now.Add(-time.Minute))

	current, err := env.progress.Current(context.Background(), alice)
	require.NoError(t, err)

	want := map[string]string{
		"ruby":   "one",
		"go":     "two",
		"python": "one",
		"scala":  "one",
	}
	require.Len(t, current, len(want))
	for track, slug := range want {
		require.Contains(t, current, track)
		assert.Equal(t, slug, current[track].Slug, "track %s", track)
	}
}

func TestCurrent_FinishedTrackDropsOut(t *testing.T) {
	env := newTestEnv(t)
	bob := env.createUser(t, "bob",
		map[string]string{"ruby": "two"},
		map[string][]string{"ruby": {"one", "two"}},
	)

	current, err := env.progress.Current(context.Background(), bob)
	require.NoError(t, err)

	assert.NotContains(t, current, "ruby")
	assert.Contains(t, current, "go")
	assert.Contains(t, current, "scala")
}

func TestCurrent_PointerOnCompletedExerciseAdvances(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "carol",
		map[string]string{"scala": "one"},
		map[string][]string{"scala": {"one"}},
	)

	current, err := env.progress.Current(context.Background(), user)
	require.NoError(t, err)

	require.Contains(t, current, "scala")
	assert.Equal(t, "two", current["scala"].Slug)
}

func TestCompleted_FreshUserYieldsEmptyMapping(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "fresh", nil, nil)

	completed, err := env.progress.Completed(context.Background(), user)
	require.NoError(t, err)

	assert.Empty(t, completed)
}

func TestCompleted_GroupsByTrackInSubmissionOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "dora", nil, nil)
	now := time.Now().UTC()
	env.createSubmission(t, user, "ruby", "one", "CODE", model.SubmissionDone, now.Add(-3*time.Minute))
	env.createSubmission(t, user, "ruby", "two", "CODE", model.SubmissionDone, now.Add(-2*time.Minute))
	env.createSubmission(t, user, "python", "one", "CODE", model.SubmissionDone, now.Add(-time.Minute))

	completed, err := env.progress.Completed(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"ruby":   {"one", "two"},
		"python": {"one"},
	}, completed)
}

func TestCompleted_PendingSubmissionsDoNotCount(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "eli", nil, nil)
	env.createSubmission(t, user, "ruby", "one", "CODE", model.SubmissionPending, time.Now().UTC())

	completed, err := env.progress.Completed(context.Background(), user)
	require.NoError(t, err)

	assert.Empty(t, completed)
}

func TestCompleted_FinishedTrackFullyPresent(t *testing.T) {
	env := newTestEnv(t)
	bob := env.createUser(t, "bob",
		map[string]string{"ruby": "two"},
		map[string][]string{"ruby": {"one", "two"}},
	)
	now := time.Now().UTC()
	env.createSubmission(t, bob, "ruby", "one", "CODE", model.SubmissionDone, now.Add(-2*time.Minute))
	env.createSubmission(t, bob, "ruby", "two", "CODE", model.SubmissionDone, now.Add(-time.Minute))

	current, err := env.progress.Current(context.Background(), bob)
	require.NoError(t, err)
	completed, err := env.progress.Completed(context.Background(), bob)
	require.NoError(t, err)

	assert.NotContains(t, current, "ruby")
	assert.Equal(t, []string{"one", "two"}, completed["ruby"])
}
