// internal/domain/session/store.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/infrastructure/persistence"
	"github.com/your-org/storefront-gateway/internal/pkg/auth"
)

// Store holds the current session and gates every authenticated backend
// call. Login and Logout are atomic: readers see either the full new session
// or none at all. Dependents register logout hooks so a cleared session also
// clears their in-memory state.
type Store struct {
	mu      sync.RWMutex
	current *Session
	hooks   []func()

	persist persistence.Store
	log     *logrus.Entry
}

// NewStore creates a session store over the given durable persistence
func NewStore(persist persistence.Store, log *logrus.Logger) *Store {
	return &Store{
		persist: persist,
		log:     log.WithField("component", "session_store"),
	}
}

// Restore loads a persisted session at startup. An expired or unparseable
// token is discarded; the backend would reject it anyway.
func (s *Store) Restore(ctx context.Context) error {
	rec, ok, err := s.persist.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if auth.Expired(rec.Token, time.Now().UTC()) {
		s.log.Info("Discarding expired persisted session")
		return s.persist.Clear(ctx)
	}

	s.mu.Lock()
	s.current = &Session{
		Token:  rec.Token,
		UserID: rec.UserID,
		Role:   Role(rec.Role),
		Email:  rec.Email,
	}
	s.mu.Unlock()

	s.log.WithField("user_id", rec.UserID).Info("Session restored")
	return nil
}

// Login stores the new session atomically and persists it. Reads issued
// after Login returns see the new session.
func (s *Store) Login(ctx context.Context, token, role, userID, email string) error {
	sess := &Session{
		Token:  token,
		UserID: userID,
		Role:   Role(role),
		Email:  email,
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	err := s.persist.Save(ctx, persistence.Record{
		Token:  token,
		Role:   role,
		UserID: userID,
		Email:  email,
	})
	if err != nil {
		// The in-memory session stands; it just won't survive a restart
		s.log.WithError(err).Warn("Failed to persist session")
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "role": role}).Info("Logged in")
	return nil
}

// Logout clears the session atomically, wipes the persisted copy, and runs
// the registered hooks so dependents drop their cart/order state. Calling it
// with no active session is a no-op, so a burst of 401s triggers the hooks
// only once.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	userID := s.current.UserID
	s.current = nil
	hooks := make([]func(), len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	if err := s.persist.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("Failed to clear persisted session")
	}

	for _, hook := range hooks {
		hook()
	}

	s.log.WithField("user_id", userID).Info("Logged out")
}

// Current returns the active session, if any
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Token implements backend.TokenSource
func (s *Store) Token() (string, bool) {
	sess, ok := s.Current()
	if !ok {
		return "", false
	}
	return sess.Token, true
}

// OnLogout registers a hook run whenever the session is cleared, whether by
// explicit logout or by a 401/403 from the backend
func (s *Store) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}
