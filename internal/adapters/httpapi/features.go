package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/example/sprintdesk/internal/models"
	"github.com/example/sprintdesk/internal/ports/secondary"
)

func featuresPath(projectID int) string {
	return fmt.Sprintf("/projects/%d/features", projectID)
}

func featurePath(projectID, featureID int) string {
	return fmt.Sprintf("%s/%d", featuresPath(projectID), featureID)
}

// ListFeatures implements secondary.FeatureAPI.
func (c *Client) ListFeatures(ctx context.Context, projectID int) ([]models.Feature, error) {
	return getList[models.Feature](ctx, c, featuresPath(projectID), "features")
}

// GetFeature implements secondary.FeatureAPI.
func (c *Client) GetFeature(ctx context.Context, projectID, featureID int) (*models.Feature, error) {
	return send[models.Feature](ctx, c, http.MethodGet, featurePath(projectID, featureID), nil)
}

// CreateFeature implements secondary.FeatureAPI.
func (c *Client) CreateFeature(ctx context.Context, projectID int, input models.FeatureInput) (*models.Feature, error) {
	return send[models.Feature](ctx, c, http.MethodPost, featuresPath(projectID), input)
}

// UpdateFeature implements secondary.FeatureAPI.
func (c *Client) UpdateFeature(ctx context.Context, projectID, featureID int, input models.FeatureInput) (*models.Feature, error) {
	return send[models.Feature](ctx, c, http.MethodPut, featurePath(projectID, featureID), input)
}

// MoveFeature implements secondary.FeatureAPI. The backend treats a PUT
// carrying only sprint_id as a move.
func (c *Client) MoveFeature(ctx context.Context, projectID, featureID int, move models.FeatureMove) (*models.Feature, error) {
	return send[models.Feature](ctx, c, http.MethodPut, featurePath(projectID, featureID), move)
}

// DeleteFeature implements secondary.FeatureAPI.
func (c *Client) DeleteFeature(ctx context.Context, projectID, featureID int) error {
	return c.do(ctx, http.MethodDelete, featurePath(projectID, featureID), nil, nil)
}

var _ secondary.FeatureAPI = (*Client)(nil)
