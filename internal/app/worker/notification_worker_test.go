package worker

import (
	"context"
	"encoding/json"
	"testing"

	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository/inmem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEventWritesOneRowPerRecipient(t *testing.T) {
	db := inmem.Open()
	repo := inmem.NewNotificationRepository(db)
	w := NewNotificationWorker(nil, repo, "notifications")

	payload, err := json.Marshal(&model.NotificationEvent{
		SubmissionID: "sub-1",
		Actor:        "bob",
		Track:        "ruby",
		Slug:         "one",
		RecipientIDs: []string{"alice-id", "charlie-id"},
	})
	require.NoError(t, err)

	w.handleEvent(context.Background(), payload)

	for _, recipient := range []string{"alice-id", "charlie-id"} {
		rows, err := repo.ListByUser(context.Background(), recipient, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "sub-1", rows[0].SubmissionID)
		assert.Equal(t, "bob", rows[0].Actor)
		assert.Equal(t, "ruby", rows[0].Track)
		assert.Equal(t, "one", rows[0].Slug)
	}

	count, err := repo.CountByUser(context.Background(), "alice-id")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandleEventIgnoresMalformedPayload(t *testing.T) {
	db := inmem.Open()
	repo := inmem.NewNotificationRepository(db)
	w := NewNotificationWorker(nil, repo, "notifications")

	w.handleEvent(context.Background(), []byte("{not json"))

	count, err := repo.CountByUser(context.Background(), "anyone")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
