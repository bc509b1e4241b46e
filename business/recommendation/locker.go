package recommendation

import (
	"context"
	"sync"
)

// LocalRefreshLocker is the in-process default RefreshLocker. Single-instance
// deployments only; multi-instance deployments should use the redis-backed
// lock repository instead.
type LocalRefreshLocker struct {
	mu   sync.Mutex
	held map[uint]struct{}
}

func NewLocalRefreshLocker() *LocalRefreshLocker {
	return &LocalRefreshLocker{
		held: make(map[uint]struct{}),
	}
}

func (l *LocalRefreshLocker) Acquire(ctx context.Context, userID uint) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[userID]; ok {
		return false, nil
	}
	l.held[userID] = struct{}{}

	return true, nil
}

func (l *LocalRefreshLocker) Release(ctx context.Context, userID uint) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, userID)

	return nil
}
