package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
)

// SessionAdapter is a thin adapter that translates CLI operations to SessionService calls.
type SessionAdapter struct {
	service primary.SessionService
	out     io.Writer
}

// NewSessionAdapter creates a new SessionAdapter with the given service.
func NewSessionAdapter(service primary.SessionService, out io.Writer) *SessionAdapter {
	return &SessionAdapter{
		service: service,
		out:     out,
	}
}

// Login authenticates with email and password.
func (a *SessionAdapter) Login(ctx context.Context, email, password string) error {
	user, err := a.service.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Logged in as %s (%s)\n", user.DisplayName(), user.Email)
	return nil
}

// Signup registers a new account and logs in.
func (a *SessionAdapter) Signup(ctx context.Context, signup models.Signup) error {
	user, err := a.service.Signup(ctx, signup)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Signed up as %s (user %d)\n", user.Username, user.ID)
	return nil
}

// Logout resumes the saved session so the backend can end it, then logs out.
func (a *SessionAdapter) Logout(ctx context.Context) error {
	// a failed resume still clears the local session below
	_, _ = a.service.Resume(ctx)
	if err := a.service.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Local session cleared")
		return err
	}

	fmt.Fprintln(a.out, "✓ Logged out")
	return nil
}

// WhoAmI resumes the saved session and prints the user.
func (a *SessionAdapter) WhoAmI(ctx context.Context) error {
	user, err := a.service.Resume(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "%s (%s, user %d)\n", user.DisplayName(), user.Email, user.ID)
	return nil
}
