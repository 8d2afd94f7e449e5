package app

import (
	"context"
	"fmt"
	"log"

	coresprint "github.com/example/sprintdesk/internal/core/sprint"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// SprintServiceImpl implements the SprintService interface.
type SprintServiceImpl struct {
	api      secondary.SprintAPI
	cache    *Cache
	activity activityLog
	logger   *log.Logger
}

// NewSprintService creates a new SprintService with injected dependencies.
func NewSprintService(
	api secondary.SprintAPI,
	cache *Cache,
	session *SessionImpl,
	activity secondary.ActivityWriter,
	logger *log.Logger,
) *SprintServiceImpl {
	logger = discardIfNil(logger)
	return &SprintServiceImpl{
		api:      api,
		cache:    cache,
		activity: activityLog{writer: activity, session: session, logger: logger},
		logger:   logger,
	}
}

// LoadSprints fetches the sprints of a project.
func (s *SprintServiceImpl) LoadSprints(ctx context.Context, projectID int) []models.Sprint {
	sprints, ok := request(s.cache.Sprints, s.logger, fmt.Sprintf("load sprints of project %d", projectID), func() ([]models.Sprint, error) {
		return s.api.ListSprints(ctx, projectID)
	})
	if !ok {
		return nil
	}
	merge(s.cache.Sprints, sprints, s.logger)
	return sprints
}

// GetSprint focuses the cached copy, then refreshes it from the backend.
func (s *SprintServiceImpl) GetSprint(ctx context.Context, projectID, sprintID int) *models.Sprint {
	if cached, ok := s.cache.Sprints.Get(sprintID); ok {
		_ = s.cache.Sprints.SetFocused(&cached)
	}

	sprint, ok := request(s.cache.Sprints, s.logger, fmt.Sprintf("get sprint %d", sprintID), func() (*models.Sprint, error) {
		sp, err := s.api.GetSprint(ctx, projectID, sprintID)
		if err != nil {
			return nil, err
		}
		return sp, s.cache.Sprints.SetFocused(sp)
	})
	if !ok {
		return nil
	}
	return sprint
}

// CreateSprint validates and creates a sprint.
func (s *SprintServiceImpl) CreateSprint(ctx context.Context, projectID int, input models.SprintInput) (*models.Sprint, error) {
	if err := coresprint.ValidateInput(input).Error(); err != nil {
		return nil, err
	}

	sprint, ok := request(s.cache.Sprints, s.logger, "create sprint", func() (*models.Sprint, error) {
		sp, err := s.api.CreateSprint(ctx, projectID, input)
		if err != nil {
			return nil, err
		}
		return sp, s.cache.Sprints.UpsertOne(*sp)
	})
	if !ok {
		return nil, nil
	}
	s.activity.created(ctx, "sprint", sprint.ID)
	return sprint, nil
}

// UpdateSprint updates a sprint, then reloads every sprint of its project so
// date changes that shift neighbouring sprints are picked up. A failed reload
// is logged only; the update itself succeeded.
func (s *SprintServiceImpl) UpdateSprint(ctx context.Context, projectID, sprintID int, input models.SprintInput) (*models.Sprint, error) {
	if err := coresprint.ValidateInput(input).Error(); err != nil {
		return nil, err
	}

	sprint, ok := request(s.cache.Sprints, s.logger, fmt.Sprintf("update sprint %d", sprintID), func() (*models.Sprint, error) {
		sp, err := s.api.UpdateSprint(ctx, projectID, sprintID, input)
		if err != nil {
			return nil, err
		}
		return sp, s.cache.Sprints.UpsertOne(*sp)
	})
	if !ok {
		return nil, nil
	}
	s.activity.updated(ctx, "sprint", sprint.ID, "")
	if sprints, err := s.api.ListSprints(ctx, projectID); err != nil {
		s.logger.Printf("reload sprints of project %d after update: %v", projectID, err)
	} else {
		merge(s.cache.Sprints, sprints, s.logger)
	}
	return sprint, nil
}

// DeleteSprint deletes a sprint.
func (s *SprintServiceImpl) DeleteSprint(ctx context.Context, projectID, sprintID int) bool {
	_, ok := request(s.cache.Sprints, s.logger, fmt.Sprintf("delete sprint %d", sprintID), func() (struct{}, error) {
		return struct{}{}, s.api.DeleteSprint(ctx, projectID, sprintID)
	})
	if !ok {
		return false
	}
	s.cache.Sprints.Remove(sprintID)
	s.activity.deleted(ctx, "sprint", sprintID)
	return true
}

// Sprint returns a cached sprint.
func (s *SprintServiceImpl) Sprint(id int) (models.Sprint, bool) {
	return s.cache.Sprints.Get(id)
}

// SprintsByProject returns the cached sprints of a project by start date.
func (s *SprintServiceImpl) SprintsByProject(projectID int) []models.Sprint {
	return s.cache.Index.SprintsByProject(projectID)
}

// IsLoading reports whether a sprint request is in flight.
func (s *SprintServiceImpl) IsLoading() bool {
	return s.cache.Sprints.IsLoading()
}

// Err returns the sprint error slot.
func (s *SprintServiceImpl) Err() models.FieldErrors {
	return s.cache.Sprints.Err()
}

var _ primary.SprintService = (*SprintServiceImpl)(nil)
