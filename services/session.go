package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
)

type SessionEventType string

const (
	SessionLoggedIn  SessionEventType = "logged_in"
	SessionRefreshed SessionEventType = "refreshed"
	SessionLoggedOut SessionEventType = "logged_out"
	SessionExpired   SessionEventType = "expired"
)

type SessionEvent struct {
	Type SessionEventType `json:"type"`
	At   time.Time        `json:"at"`
}

// SessionBackend persists the "token" and "refreshToken" keys.
type SessionBackend interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, session models.Session) error
}

// Session is the single holder of the user's credentials. It is read by every
// outgoing API request and written only by login, refresh and logout.
type Session struct {
	mu      sync.RWMutex
	state   models.Session
	backend SessionBackend

	obsMu     sync.Mutex
	observers map[int]func(SessionEvent)
	nextObs   int

	log *zap.Logger
}

// NewSession loads any persisted credentials from backend. A nil backend keeps
// the session in memory only.
func NewSession(ctx context.Context, backend SessionBackend, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		backend:   backend,
		observers: make(map[int]func(SessionEvent)),
		log:       log,
	}
	if backend != nil {
		state, err := backend.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		s.state = state
	}
	return s, nil
}

func NewMemorySession() *Session {
	s, _ := NewSession(context.Background(), nil, nil)
	return s
}

func (s *Session) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RefreshToken
}

// Login replaces both credentials.
func (s *Session) Login(ctx context.Context, access, refresh string) error {
	return s.update(ctx, SessionLoggedIn, func(st *models.Session) {
		st.AccessToken = access
		st.RefreshToken = refresh
	})
}

// Refreshed stores a new access token. refresh is only replaced when the
// backend rotated it.
func (s *Session) Refreshed(ctx context.Context, access, refresh string) error {
	return s.update(ctx, SessionRefreshed, func(st *models.Session) {
		st.AccessToken = access
		if refresh != "" {
			st.RefreshToken = refresh
		}
	})
}

// ClearAccessToken drops the access token and keeps the refresh token.
func (s *Session) ClearAccessToken(ctx context.Context) error {
	return s.update(ctx, SessionExpired, func(st *models.Session) {
		st.AccessToken = ""
	})
}

// Clear drops both credentials. reason is SessionLoggedOut or SessionExpired.
func (s *Session) Clear(ctx context.Context, reason SessionEventType) error {
	return s.update(ctx, reason, func(st *models.Session) {
		*st = models.Session{}
	})
}

func (s *Session) update(ctx context.Context, event SessionEventType, mutate func(*models.Session)) error {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	var err error
	if s.backend != nil {
		if err = s.backend.Save(ctx, snapshot); err != nil {
			err = fmt.Errorf("failed to persist session: %w", err)
			s.log.Error("Session persistence failed", zap.Error(err), zap.String("event", string(event)))
		}
	}
	s.mu.Unlock()

	s.notify(SessionEvent{Type: event, At: time.Now()})
	return err
}

// Subscribe registers fn for every session change. The returned func removes it.
func (s *Session) Subscribe(fn func(SessionEvent)) func() {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Session) notify(evt SessionEvent) {
	s.obsMu.Lock()
	fns := make([]func(SessionEvent), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(evt)
	}
}
