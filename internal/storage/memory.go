package storage

import (
	"context"
	"sync"
)

// Compile-time check: *MemoryAdapter must satisfy Adapter.
var _ Adapter = (*MemoryAdapter)(nil)

// MemoryAdapter keeps the flushed state in memory. It exists for tests and
// for throwaway runs; FailNextFlush lets tests exercise the engine's
// rollback path without real I/O.
type MemoryAdapter struct {
	mu       sync.Mutex
	state    State
	flushes  int
	flushErr error
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{state: EmptyState()}
}

func (a *MemoryAdapter) Load(_ context.Context) (State, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Clone(), nil
}

func (a *MemoryAdapter) Flush(_ context.Context, state State) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.flushErr != nil {
		err := a.flushErr
		a.flushErr = nil
		return err
	}
	a.state = state.Clone()
	a.flushes++
	return nil
}

func (a *MemoryAdapter) Close() error {
	return nil
}

// FailNextFlush makes the next Flush call return err and leave the stored
// state untouched.
func (a *MemoryAdapter) FailNextFlush(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.flushErr = err
}

// Flushes reports how many successful flushes happened.
func (a *MemoryAdapter) Flushes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushes
}
