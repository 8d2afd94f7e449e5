package models

// Feature represents a feature entity. A nil SprintID places the feature in
// its project's parking lot.
type Feature struct {
	ID          int        `json:"id"`
	ProjectID   int        `json:"project_id"`
	SprintID    *int       `json:"sprint_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Position    int        `json:"position,omitempty"`
	CreatedBy   int        `json:"created_by,omitempty"`
	CreatedAt   Date       `json:"created_at"`
	UpdatedAt   Date       `json:"updated_at"`
}

// EntityID implements the store record contract.
func (f Feature) EntityID() int { return f.ID }

// InParkingLot reports whether the feature has no sprint.
func (f Feature) InParkingLot() bool {
	return f.SprintID == nil
}

// InSprint reports whether the feature is assigned to sprintID.
func (f Feature) InSprint(sprintID int) bool {
	return f.SprintID != nil && *f.SprintID == sprintID
}

// FeatureInput is the body for feature create and update requests.
type FeatureInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	SprintID    *int       `json:"sprint_id"`
	Status      TaskStatus `json:"status,omitempty"`
	Priority    Priority   `json:"priority"`
}

// FeatureMove is the body for moving a feature between a sprint and the
// parking lot. A nil SprintID is sent as JSON null.
type FeatureMove struct {
	SprintID *int `json:"sprint_id"`
}
