package lock

import (
	"context"
	"sync"
	"time"

	"susu_ledger_server/pkg/errorx"
)

// localGroupLocker implements GroupLocker with in-process channel mutexes,
// one per group. Used in single-instance deployments and in tests, where no
// Redis is available.
type localGroupLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLocalGroupLocker creates an in-process locker.
func NewLocalGroupLocker() GroupLocker {
	return &localGroupLocker{locks: make(map[string]chan struct{})}
}

func (l *localGroupLocker) channel(groupUuid string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[groupUuid]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[groupUuid] = ch
	}
	return ch
}

func (l *localGroupLocker) Acquire(ctx context.Context, groupUuid string, wait time.Duration) (Unlock, error) {
	ch := l.channel(groupUuid)
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func(ctx context.Context) error {
			once.Do(func() { <-ch })
			return nil
		}, nil
	case <-timer.C:
		return nil, errorx.Newf(errorx.CodeBusy, "group %s is busy, try again", groupUuid)
	case <-ctx.Done():
		return nil, errorx.Wrapf(ctx.Err(), errorx.CodeBusy, "group %s lock wait canceled", groupUuid)
	}
}
