package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// SessionImpl implements the SessionService interface. It holds the
// authenticated user and never touches the entity stores.
type SessionImpl struct {
	auth   secondary.AuthAPI
	logger *log.Logger

	store   secondary.SessionStore
	carrier secondary.CookieCarrier
	baseURL string

	mu      sync.RWMutex
	user    *models.User
	loading bool
	err     models.FieldErrors
}

// NewSession creates a new SessionService with injected dependencies.
func NewSession(auth secondary.AuthAPI, logger *log.Logger) *SessionImpl {
	return &SessionImpl{auth: auth, logger: discardIfNil(logger)}
}

// WithPersistence keeps the transport's session cookies in store, keyed by
// baseURL, so a later process can Resume the session.
func (s *SessionImpl) WithPersistence(store secondary.SessionStore, carrier secondary.CookieCarrier, baseURL string) *SessionImpl {
	s.store = store
	s.carrier = carrier
	s.baseURL = baseURL
	return s
}

// SetLoading implements errorSlot.
func (s *SessionImpl) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// SetError implements errorSlot.
func (s *SessionImpl) SetError(err models.FieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Err returns the last authentication failure.
func (s *SessionImpl) Err() models.FieldErrors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Adopt sets the session user without contacting the backend. A nil user
// clears the session.
func (s *SessionImpl) Adopt(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u
}

// Restore adopts the backend's current session, if any.
func (s *SessionImpl) Restore(ctx context.Context) (*models.User, error) {
	user, ok := request(s, s.logger, "restore session", func() (*models.User, error) {
		return s.auth.Restore(ctx)
	})
	if !ok {
		return nil, fmt.Errorf("failed to restore session: %s", s.Err())
	}
	s.Adopt(user)
	return user, nil
}

// Resume loads the cookies saved by an earlier process, then restores the
// backend session.
func (s *SessionImpl) Resume(ctx context.Context) (*models.User, error) {
	if s.store != nil && s.carrier != nil {
		cookies, err := s.store.LoadCookies(ctx, s.baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load saved session: %w", err)
		}
		s.carrier.SetSessionCookies(cookies)
	}
	return s.Restore(ctx)
}

func (s *SessionImpl) persist(ctx context.Context) {
	if s.store == nil || s.carrier == nil {
		return
	}
	if err := s.store.SaveCookies(ctx, s.baseURL, s.carrier.SessionCookies()); err != nil {
		s.logger.Printf("warning: failed to save session: %v", err)
	}
}

func (s *SessionImpl) forget(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.ClearCookies(ctx, s.baseURL); err != nil {
		s.logger.Printf("warning: failed to clear saved session: %v", err)
	}
}

// Login authenticates and adopts the returned user.
func (s *SessionImpl) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, &models.ValidationError{Fields: models.FieldErrors{"credential": "Email and password are required"}}
	}
	user, ok := request(s, s.logger, "login", func() (*models.User, error) {
		return s.auth.Login(ctx, creds)
	})
	if !ok {
		return nil, fmt.Errorf("login failed: %s", s.Err())
	}
	s.Adopt(user)
	s.persist(ctx)
	return user, nil
}

// Signup registers a user and adopts it.
func (s *SessionImpl) Signup(ctx context.Context, signup models.Signup) (*models.User, error) {
	fields := models.FieldErrors{}
	if signup.Email == "" {
		fields["email"] = "Email is required"
	}
	if signup.Username == "" {
		fields["username"] = "Username is required"
	}
	if signup.Password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return nil, &models.ValidationError{Fields: fields}
	}

	user, ok := request(s, s.logger, "signup", func() (*models.User, error) {
		return s.auth.Signup(ctx, signup)
	})
	if !ok {
		return nil, fmt.Errorf("signup failed: %s", s.Err())
	}
	s.Adopt(user)
	s.persist(ctx)
	return user, nil
}

// Logout ends the backend session and clears the local user and saved
// cookies, even when the backend call fails.
func (s *SessionImpl) Logout(ctx context.Context) error {
	defer s.forget(ctx)
	defer s.Adopt(nil)
	_, ok := request(s, s.logger, "logout", func() (struct{}, error) {
		return struct{}{}, s.auth.Logout(ctx)
	})
	if !ok {
		return fmt.Errorf("logout failed: %s", s.Err())
	}
	return nil
}

// CurrentUser returns the authenticated user.
func (s *SessionImpl) CurrentUser() (models.User, bool) {
	if s == nil {
		return models.User{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// CurrentUserID returns the authenticated user's ID.
func (s *SessionImpl) CurrentUserID() (int, bool) {
	u, ok := s.CurrentUser()
	return u.ID, ok
}

var _ primary.SessionService = (*SessionImpl)(nil)
