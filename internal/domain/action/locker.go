package action

import (
	"context"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/redis/go-redis/v9"
)

// UserLocker serializes the processing of actions of the same user. The
// engine stays correct without it, it only reduces optimistic retries.
type UserLocker interface {
	Lock(ctx context.Context, userID string) (unlock func(), err error)
}

type localLocker struct {
	mutexes *xsync.MapOf[string, *sync.Mutex]
}

// NewLocalLocker returns a locker which only serializes actions inside this
// process.
func NewLocalLocker() *localLocker {
	return &localLocker{mutexes: xsync.NewMapOf[*sync.Mutex]()}
}

func (l *localLocker) Lock(ctx context.Context, userID string) (func(), error) {
	mutex, _ := l.mutexes.LoadOrStore(userID, &sync.Mutex{})
	mutex.Lock()
	return mutex.Unlock, nil
}

type redisLocker struct {
	rs *redsync.Redsync
}

// NewRedisLocker returns a locker shared by every process using the same
// redis.
func NewRedisLocker(client *redis.Client) *redisLocker {
	return &redisLocker{rs: redsync.New(goredis.NewPool(client))}
}

func (l *redisLocker) Lock(ctx context.Context, userID string) (func(), error) {
	mutex := l.rs.NewMutex(
		common.RedisKeyUserLock(userID),
		redsync.WithExpiry(30*time.Second),
		redsync.WithTries(10),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		// nolint:errcheck
		mutex.UnlockContext(ctx)
	}, nil
}
