package inmem

import (
	"context"
	"testing"
	"time"

	"codetrail/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestByUserBreaksCreatedAtTiesByInsertionOrder(t *testing.T) {
	db := Open()
	repo := NewSubmissionRepository(db)
	at := time.Now().UTC()

	first := &model.Submission{ID: "sub-1", UserID: "alice", Track: "ruby", Slug: "one", State: model.SubmissionPending, CreatedAt: at}
	second := &model.Submission{ID: "sub-2", UserID: "alice", Track: "ruby", Slug: "two", State: model.SubmissionPending, CreatedAt: at}
	require.NoError(t, repo.CreateSubmission(context.Background(), nil, first))
	require.NoError(t, repo.CreateSubmission(context.Background(), nil, second))

	latest, err := repo.LatestByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "sub-2", latest.ID)

	prev, err := repo.LatestByUserTrack(context.Background(), "alice", "ruby", "sub-2")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", prev.ID)
}
