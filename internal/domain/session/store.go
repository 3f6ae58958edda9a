package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultIdleTTL is used when NewStore gets a non-positive TTL.
const DefaultIdleTTL = 24 * time.Hour

// Recorder receives session lifecycle events.
type Recorder interface {
	SetSessionsActive(count int)
	IncSessionsCreated()
}

// Store maps session tokens to sessions
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session // Protected by mu
	idleTTL  time.Duration
	now      func() time.Time
	metrics  Recorder
	logger   *zap.Logger
}

// NewStore creates an empty store that expires sessions idle for idleTTL
func NewStore(idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
}

// WithMetrics reports the live session count to r
func (s *Store) WithMetrics(r Recorder) *Store {
	s.metrics = r
	return s
}

// WithLogger sets the logger used for sweep reports
func (s *Store) WithLogger(logger *zap.Logger) *Store {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock replaces the time source. Tests use it to drive expiry.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Acquire returns the live session for token and refreshes its idle timer.
// An empty, unknown or expired token yields a fresh session under a new
// token; created reports that case.
func (s *Store) Acquire(token string) (sess *Session, created bool) {
	now := s.now()

	s.mu.Lock()
	if existing, ok := s.sessions[token]; ok && !s.expired(existing, now) {
		existing.lastSeen = now
		s.mu.Unlock()
		return existing, false
	}
	if token != "" {
		delete(s.sessions, token)
	}

	sess = newSession(uuid.NewString(), now)
	s.sessions[sess.token] = sess
	count := len(s.sessions)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.IncSessionsCreated()
	}
	s.report(count)
	return sess, true
}

// Get returns the live session for token without minting a new one
func (s *Store) Get(token string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok || s.expired(sess, s.now()) {
		return nil, false
	}
	return sess, true
}

// Delete drops the session for token
func (s *Store) Delete(token string) bool {
	s.mu.Lock()
	_, ok := s.sessions[token]
	delete(s.sessions, token)
	count := len(s.sessions)
	s.mu.Unlock()

	if ok {
		s.report(count)
	}
	return ok
}

// Len returns the number of sessions held, expired or not
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes every session idle longer than the TTL at now and returns
// how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	removed := 0
	var longest time.Duration
	for token, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, token)
			removed++
			longest = max(longest, sess.lastSeen.Sub(sess.CreatedAt()))
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug("Swept idle sessions",
			zap.Int("removed", removed),
			zap.Int("remaining", count),
			zap.Duration("longest_lifetime", longest),
		)
		s.report(count)
	}
	return removed
}

// Run sweeps every interval until ctx is done
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.lastSeen) > s.idleTTL
}

func (s *Store) report(count int) {
	if s.metrics != nil {
		s.metrics.SetSessionsActive(count)
	}
}
