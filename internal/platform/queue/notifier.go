package queue

import (
	"context"
	"encoding/json"

	"codetrail/internal/common"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/notify"

	"github.com/redis/go-redis/v9"
)

// redisNotifier pushes notification events onto a redis list consumed by the
// notification worker.
type redisNotifier struct {
	rdb       *redis.Client
	queueName string
}

func NewRedisNotifier(rdb *redis.Client, queueName string) notify.Notifier {
	return &redisNotifier{rdb: rdb, queueName: queueName}
}

func (n *redisNotifier) Everyone(ctx context.Context, event *model.NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return common.Errorf("failed to marshal notification event: %w", err)
	}
	if err := n.rdb.RPush(ctx, n.queueName, payload).Err(); err != nil {
		return common.Errorf("failed to enqueue notification event: %w", err)
	}
	return nil
}
