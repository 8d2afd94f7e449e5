package models

import "slices"

// Project represents a project entity.
type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int    `json:"owner_id"`
	DueDate     Date   `json:"due_date"`
	Status      string `json:"status,omitempty"`
	Members     []int  `json:"members,omitempty"`
	CreatedAt   Date   `json:"created_at"`
	UpdatedAt   Date   `json:"updated_at"`
}

// EntityID implements the store record contract.
func (p Project) EntityID() int { return p.ID }

// HasMember reports whether userID is listed as a member.
func (p Project) HasMember(userID int) bool {
	return slices.Contains(p.Members, userID)
}

// ProjectInput is the body for project create and update requests.
type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     Day    `json:"due_date"`
}
