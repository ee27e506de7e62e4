// Package lock provides per-group mutual exclusion for engine operations.
// Every mutating group operation runs under its group's lock, so invariant
// checks and writes observe a consistent snapshot. Waiters poll with a
// bounded deadline; when it passes they fail fast with a busy error rather
// than queueing.
package lock

import (
	"context"
	"time"
)

// Unlock releases a held lock. It is safe to call exactly once.
type Unlock func(ctx context.Context) error

// GroupLocker serializes operations on a single group. Locks on different
// groups never contend.
type GroupLocker interface {
	// Acquire blocks up to wait for the group's lock, then returns an
	// unlock function. When wait passes without acquisition it returns
	// a CodeBusy error.
	Acquire(ctx context.Context, groupUuid string, wait time.Duration) (Unlock, error)
}

// WithLock runs fn under the group's lock and releases it afterwards.
func WithLock(ctx context.Context, locker GroupLocker, groupUuid string, wait time.Duration, fn func() error) error {
	unlock, err := locker.Acquire(ctx, groupUuid, wait)
	if err != nil {
		return err
	}
	defer func() {
		_ = unlock(ctx)
	}()
	return fn()
}
