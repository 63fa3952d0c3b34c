package views

import (
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/moodshift/internal/shared"
)

var (
	ErrJournalTooShort   = fmt.Errorf("%w: journal entry must be at least %d characters", shared.ErrInvalidInput, MinJournalLength)
	ErrNoPendingPlaylist = errors.New("no playlist found")
	ErrNoSelection       = fmt.Errorf("%w: no playlist selected", shared.ErrInvalidArgument)
)

// state is the loading/result/error triple every view keeps.
//
// Views are written by one goroutine at a time but read by the renderer, so access is locked.
type state[T any] struct {
	mu      sync.RWMutex
	loading bool
	data    T
	present bool
	err     error
}

func (s *state[T]) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = nil
}

func (s *state[T]) succeed(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.data = v
	s.present = true
	s.err = nil
}

func (s *state[T]) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err
}

func (s *state[T]) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.loading = false
	s.data = zero
	s.present = false
	s.err = nil
}

func (s *state[T]) get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.present
}

func (s *state[T]) isLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *state[T]) lastErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
