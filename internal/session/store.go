package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gatrack/internal/tracking"
)

// Store owns the open UIs of the service.
type Store struct {
	mu       sync.RWMutex
	uis      map[string]*UI
	onCreate []func(*UI)
	opts     tracking.Options
	log      zerolog.Logger
}

// NewStore creates an empty Store. opts are passed to every UI's tracker.
func NewStore(opts tracking.Options) *Store {
	s := &Store{uis: make(map[string]*UI), opts: opts, log: zerolog.Nop()}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	return s
}

// OnCreate registers fn to run for every UI opened after the call.
func (s *Store) OnCreate(fn func(*UI)) {
	s.mu.Lock()
	s.onCreate = append(s.onCreate, fn)
	s.mu.Unlock()
}

// Open creates and registers a new UI.
func (s *Store) Open(production bool) *UI {
	u := newUI(uuid.NewString(), production, s.opts)
	s.mu.Lock()
	s.uis[u.id] = u
	hooks := slices.Clone(s.onCreate)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(u)
	}
	s.log.Debug().Str("ui_id", u.id).Bool("production", production).Msg("ui opened")
	return u
}

// Get returns the UI with the given id.
func (s *Store) Get(id string) (*UI, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.uis[id]
	return u, ok
}

// Close removes and closes the UI. It reports whether the UI existed.
func (s *Store) Close(id string) bool {
	s.mu.Lock()
	u, ok := s.uis[id]
	delete(s.uis, id)
	s.mu.Unlock()
	if !ok {
		return false
	}
	u.Close()
	s.log.Debug().Str("ui_id", id).Msg("ui closed")
	return true
}

// Len returns the number of open UIs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.uis)
}

// Expire closes every UI that has not started a turn within maxIdle and
// returns how many were closed.
func (s *Store) Expire(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.RLock()
	var stale []string
	for id, u := range s.uis {
		if u.idleSince(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()
	n := 0
	for _, id := range stale {
		if s.Close(id) {
			n++
		}
	}
	if n > 0 {
		s.log.Debug().Int("expired", n).Dur("max_idle", maxIdle).Msg("idle uis closed")
	}
	return n
}

// RunExpiry calls Expire every interval until ctx is done. onExpire, when
// set, receives the number of UIs closed by each sweep.
func (s *Store) RunExpiry(ctx context.Context, interval, maxIdle time.Duration, onExpire func(int)) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Expire(maxIdle); n > 0 && onExpire != nil {
				onExpire(n)
			}
		}
	}
}
