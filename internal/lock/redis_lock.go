package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"susu_ledger_server/pkg/errorx"
)

// releaseScript deletes the lock key only when the stored token matches, so
// a slow holder cannot release a lock that has already expired and been
// re-acquired by someone else.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

// redisGroupLocker implements GroupLocker with SET NX PX on a shared Redis,
// so the lock also excludes holders on other server instances.
type redisGroupLocker struct {
	client   *redis.Client
	ttl      time.Duration
	newToken func() string
}

// NewRedisGroupLocker creates a Redis-backed locker. ttl bounds how long a
// crashed holder can keep a group stuck.
func NewRedisGroupLocker(client *redis.Client, ttl time.Duration, newToken func() string) GroupLocker {
	return &redisGroupLocker{client: client, ttl: ttl, newToken: newToken}
}

func lockKey(groupUuid string) string {
	return "susu:group_lock:" + groupUuid
}

func (l *redisGroupLocker) Acquire(ctx context.Context, groupUuid string, wait time.Duration) (Unlock, error) {
	key := lockKey(groupUuid)
	token := l.newToken()
	deadline := time.Now().Add(wait)
	backoff := 10 * time.Millisecond

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errorx.Wrapf(err, errorx.CodeCacheError, "acquire lock %s", key)
		}
		if ok {
			return func(ctx context.Context) error {
				if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
					zap.L().Warn("release group lock failed", zap.String("key", key), zap.Error(err))
					return errorx.Wrapf(err, errorx.CodeCacheError, "release lock %s", key)
				}
				return nil
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, errorx.Newf(errorx.CodeBusy, "group %s is busy, try again", groupUuid)
		}
		select {
		case <-ctx.Done():
			return nil, errorx.Wrapf(ctx.Err(), errorx.CodeBusy, "group %s lock wait canceled", groupUuid)
		case <-time.After(backoff):
		}
		if backoff < 80*time.Millisecond {
			backoff *= 2
		}
	}
}
