package notify

import (
	"context"

	"codetrail/internal/domain/model"
)

// Notifier is the delivery trigger. The core computes the recipient set and
// invokes Everyone exactly once per submission event; delivery itself happens
// elsewhere and its failure never rolls back a submission.
type Notifier interface {
	Everyone(ctx context.Context, event *model.NotificationEvent) error
}
