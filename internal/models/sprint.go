package models

// Sprint represents a sprint entity.
type Sprint struct {
	ID        int    `json:"id"`
	ProjectID int    `json:"project_id"`
	Name      string `json:"name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
	Duration  *int   `json:"duration,omitempty"`
	CreatedAt Date   `json:"created_at"`
	UpdatedAt Date   `json:"updated_at"`
}

// EntityID implements the store record contract.
func (s Sprint) EntityID() int { return s.ID }

// SprintInput is the body for sprint create and update requests.
type SprintInput struct {
	Name      string `json:"name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}
