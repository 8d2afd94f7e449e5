package app

import (
	"context"
	"fmt"
	"log"

	corefeature "github.com/example/sprintdesk/internal/core/feature"
	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/primary"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

// FeatureServiceImpl implements the FeatureService interface.
type FeatureServiceImpl struct {
	api      secondary.FeatureAPI
	cache    *Cache
	activity activityLog
	logger   *log.Logger
}

// NewFeatureService creates a new FeatureService with injected dependencies.
func NewFeatureService(
	api secondary.FeatureAPI,
	cache *Cache,
	session *SessionImpl,
	activity secondary.ActivityWriter,
	logger *log.Logger,
) *FeatureServiceImpl {
	logger = discardIfNil(logger)
	return &FeatureServiceImpl{
		api:      api,
		cache:    cache,
		activity: activityLog{writer: activity, session: session, logger: logger},
		logger:   logger,
	}
}

// LoadFeatures fetches the features of a project.
func (s *FeatureServiceImpl) LoadFeatures(ctx context.Context, projectID int) []models.Feature {
	features, ok := request(s.cache.Features, s.logger, fmt.Sprintf("load features of project %d", projectID), func() ([]models.Feature, error) {
		return s.api.ListFeatures(ctx, projectID)
	})
	if !ok {
		return nil
	}
	merge(s.cache.Features, features, s.logger)
	return features
}

// GetFeature focuses the cached copy, then refreshes it from the backend.
func (s *FeatureServiceImpl) GetFeature(ctx context.Context, projectID, featureID int) *models.Feature {
	if cached, ok := s.cache.Features.Get(featureID); ok {
		_ = s.cache.Features.SetFocused(&cached)
	}

	feature, ok := request(s.cache.Features, s.logger, fmt.Sprintf("get feature %d", featureID), func() (*models.Feature, error) {
		f, err := s.api.GetFeature(ctx, projectID, featureID)
		if err != nil {
			return nil, err
		}
		return f, s.cache.Features.SetFocused(f)
	})
	if !ok {
		return nil
	}
	return feature
}

// CreateFeature validates and creates a feature.
func (s *FeatureServiceImpl) CreateFeature(ctx context.Context, projectID int, input models.FeatureInput) (*models.Feature, error) {
	if err := corefeature.ValidateInput(input).Error(); err != nil {
		return nil, err
	}
	if err := s.checkPlacement(projectID, input.SprintID); err != nil {
		return nil, err
	}

	feature, ok := request(s.cache.Features, s.logger, "create feature", func() (*models.Feature, error) {
		f, err := s.api.CreateFeature(ctx, projectID, input)
		if err != nil {
			return nil, err
		}
		return f, s.cache.Features.UpsertOne(*f)
	})
	if !ok {
		return nil, nil
	}
	s.activity.created(ctx, "feature", feature.ID)
	return feature, nil
}

// UpdateFeature validates and updates a feature.
func (s *FeatureServiceImpl) UpdateFeature(ctx context.Context, projectID, featureID int, input models.FeatureInput) (*models.Feature, error) {
	if err := corefeature.ValidateInput(input).Error(); err != nil {
		return nil, err
	}
	if err := s.checkPlacement(projectID, input.SprintID); err != nil {
		return nil, err
	}

	feature, ok := request(s.cache.Features, s.logger, fmt.Sprintf("update feature %d", featureID), func() (*models.Feature, error) {
		f, err := s.api.UpdateFeature(ctx, projectID, featureID, input)
		if err != nil {
			return nil, err
		}
		return f, s.cache.Features.UpsertOne(*f)
	})
	if !ok {
		return nil, nil
	}
	s.activity.updated(ctx, "feature", feature.ID, "")
	return feature, nil
}

// MoveFeature assigns a feature to a sprint of the same project.
func (s *FeatureServiceImpl) MoveFeature(ctx context.Context, projectID, featureID, sprintID int) (*models.Feature, error) {
	return s.move(ctx, projectID, featureID, &sprintID)
}

// ParkFeature moves a feature to its project's parking lot.
func (s *FeatureServiceImpl) ParkFeature(ctx context.Context, projectID, featureID int) (*models.Feature, error) {
	return s.move(ctx, projectID, featureID, nil)
}

func (s *FeatureServiceImpl) move(ctx context.Context, projectID, featureID int, sprintID *int) (*models.Feature, error) {
	if err := s.checkPlacement(projectID, sprintID); err != nil {
		return nil, err
	}

	feature, ok := request(s.cache.Features, s.logger, fmt.Sprintf("move feature %d", featureID), func() (*models.Feature, error) {
		f, err := s.api.MoveFeature(ctx, projectID, featureID, models.FeatureMove{SprintID: sprintID})
		if err != nil {
			return nil, err
		}
		return f, s.cache.Features.UpsertOne(*f)
	})
	if !ok {
		return nil, nil
	}

	detail := "sprint_id: null"
	if sprintID != nil {
		detail = fmt.Sprintf("sprint_id: %d", *sprintID)
	}
	s.activity.updated(ctx, "feature", feature.ID, detail)
	return feature, nil
}

// checkPlacement enforces that a non-null sprint belongs to projectID.
func (s *FeatureServiceImpl) checkPlacement(projectID int, sprintID *int) error {
	ctx := corefeature.SprintPlacementContext{FeatureProjectID: projectID, SprintID: sprintID}
	if sprintID != nil {
		if sp, ok := s.cache.Sprints.Get(*sprintID); ok {
			ctx.SprintExists = true
			ctx.SprintProjectID = sp.ProjectID
		}
	}
	return corefeature.CanPlaceInSprint(ctx).Error()
}

// DeleteFeature deletes a feature.
func (s *FeatureServiceImpl) DeleteFeature(ctx context.Context, projectID, featureID int) bool {
	_, ok := request(s.cache.Features, s.logger, fmt.Sprintf("delete feature %d", featureID), func() (struct{}, error) {
		return struct{}{}, s.api.DeleteFeature(ctx, projectID, featureID)
	})
	if !ok {
		return false
	}
	s.cache.Features.Remove(featureID)
	s.activity.deleted(ctx, "feature", featureID)
	return true
}

// Feature returns a cached feature.
func (s *FeatureServiceImpl) Feature(id int) (models.Feature, bool) {
	return s.cache.Features.Get(id)
}

// FeaturesBySprint returns the cached features of a sprint.
func (s *FeatureServiceImpl) FeaturesBySprint(sprintID int) []models.Feature {
	return s.cache.Index.FeaturesBySprint(sprintID)
}

// ParkingLot returns the cached features of a project that have no sprint.
func (s *FeatureServiceImpl) ParkingLot(projectID int) []models.Feature {
	return s.cache.Index.ParkingLot(projectID)
}

// FeaturesByProject returns every cached feature of a project.
func (s *FeatureServiceImpl) FeaturesByProject(projectID int) []models.Feature {
	return s.cache.Index.FeaturesByProject(projectID)
}

// IsLoading reports whether a feature request is in flight.
func (s *FeatureServiceImpl) IsLoading() bool {
	return s.cache.Features.IsLoading()
}

// Err returns the feature error slot.
func (s *FeatureServiceImpl) Err() models.FieldErrors {
	return s.cache.Features.Err()
}

var _ primary.FeatureService = (*FeatureServiceImpl)(nil)
