package primary

import (
	"context"

	"github.com/example/sprintdesk/internal/models"
)

// UserService defines the primary port for the user directory.
type UserService interface {
	LoadUsers(ctx context.Context) []models.User
	User(id int) (models.User, bool)
	Users() []models.User

	IsLoading() bool
	Err() models.FieldErrors
}

// SessionService defines the primary port for authentication.
type SessionService interface {
	// Restore adopts the backend's current session, if any.
	Restore(ctx context.Context) (*models.User, error)
	// Resume loads the saved session cookies, then restores.
	Resume(ctx context.Context) (*models.User, error)

	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Signup(ctx context.Context, signup models.Signup) (*models.User, error)
	Logout(ctx context.Context) error

	// CurrentUser returns the authenticated user.
	CurrentUser() (models.User, bool)

	// CurrentUserID returns the authenticated user's ID.
	CurrentUserID() (int, bool)
}
