package service

import (
	"context"
	"testing"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleReviewResult_DoneCompletesExerciseAndAdvancesPointer(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)
	sub, err := env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.rb")
	require.NoError(t, err)

	err = env.reviews.HandleReviewResult(context.Background(), ReviewResultRequest{
		SubmissionID: sub.ID,
		Done:         true,
	})
	require.NoError(t, err)

	stored, err := env.subs.GetSubmissionByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionDone, stored.State)

	user, err := env.users.FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, user.Completed["ruby"])
	assert.Equal(t, "two", user.Current["ruby"])
}

func TestHandleReviewResult_DoneOnLastExerciseFinishesTrail(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice",
		map[string]string{"ruby": "two"},
		map[string][]string{"ruby": {"one"}},
	)
	sub, err := env.submissions.Submit(context.Background(), alice, "THE CODE", "two/code.rb")
	require.NoError(t, err)

	err = env.reviews.HandleReviewResult(context.Background(), ReviewResultRequest{
		SubmissionID: sub.ID,
		Done:         true,
	})
	require.NoError(t, err)

	user, err := env.users.FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, user.Completed["ruby"])
	assert.NotContains(t, user.Current, "ruby")
}

func TestHandleReviewResult_NitsBlockUnsubmit(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", nil, nil)
	sub, err := env.submissions.Submit(context.Background(), alice, "THE CODE", "one/code.rb")
	require.NoError(t, err)

	err = env.reviews.HandleReviewResult(context.Background(), ReviewResultRequest{
		SubmissionID: sub.ID,
		NitCount:     1,
	})
	require.NoError(t, err)

	err = env.unsubmit.Unsubmit(context.Background(), alice)
	assert.ErrorIs(t, err, common.ErrSubmissionHasNits)
}

func TestHandleReviewResult_UnknownSubmission(t *testing.T) {
	env := newTestEnv(t)

	err := env.reviews.HandleReviewResult(context.Background(), ReviewResultRequest{
		SubmissionID: "no-such-id",
		Done:         true,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
