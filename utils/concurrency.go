package utils

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool runs jobs on goroutines with an upper bound on how many run at once.
// Jobs never cancel each other: a Pool is a join, not a fail-fast group.
type Pool struct {
	g errgroup.Group
}

// NewPool creates a Pool. maxWorkers <= 0 means unbounded.
func NewPool(maxWorkers int) *Pool {
	p := &Pool{}
	if maxWorkers > 0 {
		p.g.SetLimit(maxWorkers)
	}
	return p
}

// Submit schedules job, blocking while the pool is at its limit.
func (p *Pool) Submit(job func()) {
	p.g.Go(func() error {
		job()
		return nil
	})
}

// Wait blocks until all submitted jobs have completed.
func (p *Pool) Wait() {
	_ = p.g.Wait()
}

// RunAll runs fn(i) for i in [0,n) on a Pool bounded by maxWorkers and waits for all of them.
// fn must write its result into caller-owned slot i; that keeps results positional.
func RunAll(ctx context.Context, n, maxWorkers int, fn func(ctx context.Context, i int)) {
	pool := NewPool(maxWorkers)
	for i := 0; i < n; i++ {
		idx := i
		pool.Submit(func() { fn(ctx, idx) })
	}
	pool.Wait()
}

// KeySet is a thread-safe set of string keys.
type KeySet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewKeySet creates an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *KeySet) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Contains reports whether key has been added.
func (s *KeySet) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[key]
	return exists
}

// Size returns the number of unique keys tracked.
func (s *KeySet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
