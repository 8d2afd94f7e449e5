package primary

import (
	"context"

	"github.com/example/sprintdesk/internal/models"
)

// FeatureService defines the primary port for feature operations.
type FeatureService interface {
	// LoadFeatures fetches the features of a project.
	LoadFeatures(ctx context.Context, projectID int) []models.Feature

	GetFeature(ctx context.Context, projectID, featureID int) *models.Feature
	CreateFeature(ctx context.Context, projectID int, input models.FeatureInput) (*models.Feature, error)
	UpdateFeature(ctx context.Context, projectID, featureID int, input models.FeatureInput) (*models.Feature, error)

	// MoveFeature assigns a feature to a sprint of the same project.
	MoveFeature(ctx context.Context, projectID, featureID, sprintID int) (*models.Feature, error)

	// ParkFeature moves a feature to its project's parking lot.
	ParkFeature(ctx context.Context, projectID, featureID int) (*models.Feature, error)

	DeleteFeature(ctx context.Context, projectID, featureID int) bool

	Feature(id int) (models.Feature, bool)
	FeaturesBySprint(sprintID int) []models.Feature
	ParkingLot(projectID int) []models.Feature
	FeaturesByProject(projectID int) []models.Feature

	IsLoading() bool
	Err() models.FieldErrors
}
