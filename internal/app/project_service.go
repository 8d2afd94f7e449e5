package app

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/example/sprintdesk/internal/core/crossref"
	coreproject "github.com/example/sprintdesk/internal/core/project"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	api      secondary.ProjectAPI
	users    secondary.UserAPI
	cache    *Cache
	session  *SessionImpl
	activity activityLog
	logger   *log.Logger
	now      func() time.Time
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(
	api secondary.ProjectAPI,
	users secondary.UserAPI,
	cache *Cache,
	session *SessionImpl,
	activity secondary.ActivityWriter,
	logger *log.Logger,
) *ProjectServiceImpl {
	logger = discardIfNil(logger)
	return &ProjectServiceImpl{
		api:      api,
		users:    users,
		cache:    cache,
		session:  session,
		activity: activityLog{writer: activity, session: session, logger: logger},
		logger:   logger,
		now:      time.Now,
	}
}

// LoadProjects fetches every project and merges it into the cache.
func (s *ProjectServiceImpl) LoadProjects(ctx context.Context) []models.Project {
	projects, ok := request(s.cache.Projects, s.logger, "load projects", func() ([]models.Project, error) {
		return s.api.ListProjects(ctx)
	})
	if !ok {
		return nil
	}
	merge(s.cache.Projects, projects, s.logger)
	return projects
}

// GetProject focuses the cached copy, then refreshes it from the backend.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, id int) *models.Project {
	if cached, ok := s.cache.Projects.Get(id); ok {
		_ = s.cache.Projects.SetFocused(&cached)
	}

	project, ok := request(s.cache.Projects, s.logger, fmt.Sprintf("get project %d", id), func() (*models.Project, error) {
		p, err := s.api.GetProject(ctx, id)
		if err != nil {
			return nil, err
		}
		return p, s.cache.Projects.SetFocused(p)
	})
	if !ok {
		return nil
	}
	return project
}

// CreateProject validates and creates a project.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	if err := coreproject.ValidateInput(coreproject.InputContext{Input: input, Now: s.now()}).Error(); err != nil {
		return nil, err
	}

	project, ok := request(s.cache.Projects, s.logger, "create project", func() (*models.Project, error) {
		p, err := s.api.CreateProject(ctx, input)
		if err != nil {
			return nil, err
		}
		return p, s.cache.Projects.SetFocused(p)
	})
	if !ok {
		return nil, nil
	}
	s.activity.created(ctx, "project", project.ID)
	return project, nil
}

// UpdateProject validates, checks ownership and updates a project.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, id int, input models.ProjectInput) (*models.Project, error) {
	if err := s.checkOwner(ctx, id, coreproject.CanUpdateProject); err != nil {
		return nil, err
	}
	if err := coreproject.ValidateInput(coreproject.InputContext{Input: input, Now: s.now()}).Error(); err != nil {
		return nil, err
	}

	project, ok := request(s.cache.Projects, s.logger, fmt.Sprintf("update project %d", id), func() (*models.Project, error) {
		p, err := s.api.UpdateProject(ctx, id, input)
		if err != nil {
			return nil, err
		}
		return p, s.cache.Projects.SetFocused(p)
	})
	if !ok {
		return nil, nil
	}
	s.activity.updated(ctx, "project", project.ID, "")
	return project, nil
}

// DeleteProject checks ownership and deletes a project.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, id int) (bool, error) {
	if err := s.checkOwner(ctx, id, coreproject.CanDeleteProject); err != nil {
		return false, err
	}

	_, ok := request(s.cache.Projects, s.logger, fmt.Sprintf("delete project %d", id), func() (struct{}, error) {
		return struct{}{}, s.api.DeleteProject(ctx, id)
	})
	if !ok {
		return false, nil
	}
	s.cache.Projects.Remove(id)
	s.activity.deleted(ctx, "project", id)
	return true, nil
}

// checkOwner evaluates an ownership guard against the cached project,
// fetching it first when it is not cached.
func (s *ProjectServiceImpl) checkOwner(ctx context.Context, id int, guard func(coreproject.OwnershipContext) coreproject.GuardResult) error {
	project, ok := s.cache.Projects.Get(id)
	if !ok {
		fetched := s.GetProject(ctx, id)
		if fetched == nil {
			return fmt.Errorf("project %d not found", id)
		}
		project = *fetched
	}

	uid, authenticated := s.session.CurrentUserID()
	return guard(coreproject.OwnershipContext{
		ProjectID:     id,
		OwnerID:       project.OwnerID,
		UserID:        uid,
		Authenticated: authenticated,
	}).Error()
}

// LoadProjectUsers fetches the members of a project into the user cache.
func (s *ProjectServiceImpl) LoadProjectUsers(ctx context.Context, projectID int) []models.User {
	users, ok := request(s.cache.Users, s.logger, fmt.Sprintf("load users of project %d", projectID), func() ([]models.User, error) {
		return s.users.ListProjectUsers(ctx, projectID)
	})
	if !ok {
		return nil
	}
	merge(s.cache.Users, users, s.logger)
	return users
}

// Project returns a cached project.
func (s *ProjectServiceImpl) Project(id int) (models.Project, bool) {
	return s.cache.Projects.Get(id)
}

// Projects returns every cached project ordered by ID.
func (s *ProjectServiceImpl) Projects() []models.Project {
	projects := s.cache.Projects.All()
	slices.SortFunc(projects, func(a, b models.Project) int { return cmp.Compare(a.ID, b.ID) })
	return projects
}

// OwnedProjects returns projects owned by the session user.
func (s *ProjectServiceImpl) OwnedProjects() []models.Project {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		return []models.Project{}
	}
	return s.cache.Index.OwnedProjects(uid)
}

// MemberProjects returns projects the session user belongs to but does not own.
func (s *ProjectServiceImpl) MemberProjects() []models.Project {
	uid, ok := s.session.CurrentUserID()
	if !ok {
		return []models.Project{}
	}
	return s.cache.Index.MemberProjects(uid)
}

// ProjectsDueWithin returns projects due within the next days.
func (s *ProjectServiceImpl) ProjectsDueWithin(days int, now time.Time) []models.Project {
	projects, _ := s.cache.Projects.Snapshot()
	return crossref.ProjectsDueWithin(projects, days, now)
}

// Focused returns the project currently in focus.
func (s *ProjectServiceImpl) Focused() (models.Project, bool) {
	return s.cache.Projects.Focused()
}

// IsLoading reports whether a project request is in flight.
func (s *ProjectServiceImpl) IsLoading() bool {
	return s.cache.Projects.IsLoading()
}

// Err returns the project error slot.
func (s *ProjectServiceImpl) Err() models.FieldErrors {
	return s.cache.Projects.Err()
}

var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
