package app

import (
	"cmp"
	"context"
	"log"
	"slices"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	api    secondary.UserAPI
	cache  *Cache
	logger *log.Logger
}

// NewUserService creates a new UserService with injected dependencies.
func NewUserService(api secondary.UserAPI, cache *Cache, logger *log.Logger) *UserServiceImpl {
	return &UserServiceImpl{api: api, cache: cache, logger: discardIfNil(logger)}
}

// LoadUsers fetches the user directory.
func (s *UserServiceImpl) LoadUsers(ctx context.Context) []models.User {
	users, ok := request(s.cache.Users, s.logger, "load users", func() ([]models.User, error) {
		return s.api.ListUsers(ctx)
	})
	if !ok {
		return nil
	}
	merge(s.cache.Users, users, s.logger)
	return users
}

// User returns a cached user.
func (s *UserServiceImpl) User(id int) (models.User, bool) {
	return s.cache.Users.Get(id)
}

// Users returns every cached user ordered by ID.
func (s *UserServiceImpl) Users() []models.User {
	users := s.cache.Users.All()
	slices.SortFunc(users, func(a, b models.User) int { return cmp.Compare(a.ID, b.ID) })
	return users
}

// IsLoading reports whether a user request is in flight.
func (s *UserServiceImpl) IsLoading() bool {
	return s.cache.Users.IsLoading()
}

// Err returns the user error slot.
func (s *UserServiceImpl) Err() models.FieldErrors {
	return s.cache.Users.Err()
}

var _ primary.UserService = (*UserServiceImpl)(nil)
