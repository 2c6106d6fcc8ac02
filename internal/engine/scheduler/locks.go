package scheduler

import (
	"context"
	"path/filepath"
	"sync"
)

// pathLocks serializes executions that target the same script path.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	ch   chan struct{}
	refs int
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*pathLock)}
}

// acquire blocks until the lock for path is held or ctx is done. The returned release
// must be called exactly once when acquire succeeds.
func (p *pathLocks) acquire(ctx context.Context, path string) (release func(), err error) {
	key := filepath.Clean(path)

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &pathLock{ch: make(chan struct{}, 1)}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return func() {
			<-l.ch
			p.unref(key, l)
		}, nil
	case <-ctx.Done():
		p.unref(key, l)
		return nil, ctx.Err()
	}
}

func (p *pathLocks) unref(key string, l *pathLock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(p.locks, key)
	}
}

// size reports how many paths currently have holders or waiters.
func (p *pathLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
