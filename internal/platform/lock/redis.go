package lock

import (
	"context"
	"log"
	"time"

	"codetrail/internal/common"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// UserLocker serializes units of work per user so that two concurrent
// submissions cannot both pass the duplicate check against the same
// "most recent attempt" snapshot.
type UserLocker interface {
	Lock(ctx context.Context, userID string) (release func(), err error)
}

type redisUserLocker struct {
	rdb       *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisUserLocker(rdb *redis.Client, keyPrefix string, ttl time.Duration) UserLocker {
	return &redisUserLocker{rdb: rdb, keyPrefix: keyPrefix, ttl: ttl}
}

// releaseScript deletes the lock only if we still hold it (CAS on the value).
var releaseScript = redis.NewScript(`
    if redis.call("get", KEYS[1]) == ARGV[1] then
        return redis.call("del", KEYS[1])
    else
        return 0
    end
`)

func (l *redisUserLocker) Lock(ctx context.Context, userID string) (func(), error) {
	key := l.keyPrefix + userID
	lockValue := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, lockValue, l.ttl).Result()
		if err != nil {
			return nil, common.Errorf("failed to acquire submit lock for user %s: %w", userID, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	release := func() {
		deleted, err := releaseScript.Run(context.Background(), l.rdb, []string{key}, lockValue).Result()
		if err != nil {
			log.Printf("ERROR: Failed to release submit lock %s: %v", key, err)
		} else if n, _ := deleted.(int64); n != 1 {
			log.Printf("WARN: Submit lock %s expired before release.", key)
		}
	}
	return release, nil
}
