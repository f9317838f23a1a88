// Package store holds the canonical timeline snapshot and notifies
// subscribers whenever it is swapped.
package store

import (
	"sync"

	"github.com/evanmahr/ganttline/internal/domain"
)

// Status describes the store's relationship to its upstream snapshot source.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Store owns the canonical snapshot. Readers always observe either the
// previous or the fully updated snapshot: mutations are computed against a
// clone and swapped in under the lock.
type Store struct {
	mu       sync.RWMutex
	snap     domain.Snapshot
	status   Status
	fetchErr error

	subMu   sync.Mutex
	subs    map[int]func(domain.Snapshot)
	nextSub int
}

func New() *Store {
	return &Store{
		status: StatusEmpty,
		subs:   make(map[int]func(domain.Snapshot)),
	}
}

// Snapshot returns the canonical snapshot. The returned value shares backing
// slices with the canonical copy and must be treated as read-only; all
// mutation goes through Apply.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Status reports the fetch state alongside any fetch error.
func (s *Store) Status() (Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.fetchErr
}

// SetLoading marks a fetch in flight without touching the current snapshot.
func (s *Store) SetLoading() {
	s.mu.Lock()
	s.status = StatusLoading
	s.fetchErr = nil
	s.mu.Unlock()
}

// Fail surfaces an upstream fetch failure. The last good snapshot, if any,
// stays readable.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	s.status = StatusFailed
	s.fetchErr = err
	s.mu.Unlock()
}

// Replace installs a freshly fetched snapshot wholesale. A refresh landing
// mid-gesture simply wins; any in-flight gesture commits on top of it.
func (s *Store) Replace(next domain.Snapshot) {
	s.mu.Lock()
	next.Revision = s.snap.Revision + 1
	s.snap = next
	s.status = StatusReady
	s.fetchErr = nil
	snap := s.snap
	s.mu.Unlock()

	s.notify(snap)
}

// Apply runs fn against a clone of the canonical snapshot, validates the
// result, and swaps it in atomically. If fn or validation fails the
// canonical snapshot is left untouched and the error is returned.
func (s *Store) Apply(fn func(*domain.Snapshot) error) (domain.Snapshot, error) {
	s.mu.Lock()
	next := s.snap.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return domain.Snapshot{}, err
	}
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return domain.Snapshot{}, err
	}
	next.Revision = s.snap.Revision + 1
	s.snap = next
	s.mu.Unlock()

	s.notify(next)
	return next, nil
}

// Subscribe registers fn to run after every replace or applied mutation.
// The returned cancel func removes the subscription.
func (s *Store) Subscribe(fn func(domain.Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(snap domain.Snapshot) {
	s.subMu.Lock()
	fns := make([]func(domain.Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
