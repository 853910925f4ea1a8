// internal/models/project.go
package models

import "time"

// ProjectStatus defines the lifecycle of the project record.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

// Project is the single project record the task list belongs to.
// The status transitions once, active -> completed; completion stamps
// CompletedAt and, when the mint succeeded, NFTObjectID.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   time.Time     `json:"start_date"`
	Status      ProjectStatus `json:"status"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`

	NFTMinted   bool   `json:"nft_minted"`
	NFTObjectID string `json:"nft_object_id,omitempty"`

	// Normalized wallet addresses of project members.
	Members []string `json:"members"`
}

// DefaultProjectID is the id of the implicit single project row.
const DefaultProjectID = "default"

// DefaultProject returns the project used before the user saved one.
func DefaultProject(now time.Time) *Project {
	return &Project{
		ID:          DefaultProjectID,
		Name:        "My Project",
		Description: "Personal task management",
		StartDate:   now,
		Status:      ProjectActive,
		Members:     []string{},
	}
}
