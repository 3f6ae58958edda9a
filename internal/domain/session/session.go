package session

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/todolists/internal/domain/todo"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Error   string
	Success string
}

// Empty reports whether there is nothing to show.
func (f Flash) Empty() bool {
	return f.Error == "" && f.Success == ""
}

// Session is the state of one browser session. Callers hold Lock while they
// read or mutate Lists and the flash.
type Session struct {
	mu        sync.Mutex
	token     string
	lists     *todo.Lists
	flash     Flash
	createdAt time.Time
	lastSeen  time.Time // Protected by Store.mu
}

func newSession(token string, now time.Time) *Session {
	return &Session{
		token:     token,
		lists:     todo.NewLists(),
		createdAt: now,
		lastSeen:  now,
	}
}

// Lock acquires exclusive access to the session
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases exclusive access to the session
func (s *Session) Unlock() { s.mu.Unlock() }

// Token returns the opaque token that identifies the session
func (s *Session) Token() string { return s.token }

// CreatedAt returns when the session was minted
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Lists returns the session's lists
func (s *Session) Lists() *todo.Lists { return s.lists }

// SetError replaces the flash with an error message
func (s *Session) SetError(msg string) {
	s.flash = Flash{Error: msg}
}

// SetSuccess replaces the flash with a success message
func (s *Session) SetSuccess(msg string) {
	s.flash = Flash{Success: msg}
}

// PopFlash returns the pending flash and clears it
func (s *Session) PopFlash() Flash {
	f := s.flash
	s.flash = Flash{}
	return f
}
