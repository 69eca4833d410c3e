package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// ProjectRequest payload for creating or updating a project.
type ProjectRequest struct {
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
}

// Validate checks the project payload.
func (r *ProjectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Status, validation.Required, validation.In("active", "completed")),
	)
}

// AssignUsersRequest payload replacing a project's technician set. An
// empty list clears all assignments.
type AssignUsersRequest struct {
	UserIDs []int64 `json:"userIds"`
}

// Validate checks the assignment payload.
func (r *AssignUsersRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserIDs, validation.NotNil, validation.Each(validation.Min(int64(1)))),
	)
}

// ProjectResponse is the public shape of a project.
type ProjectResponse struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewProjectResponse maps a domain project.
func NewProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:         project.ID,
		ClientID:   project.ClientID,
		Name:       project.Name,
		Status:     string(project.Status),
		ClientName: project.ClientName,
		CreatedAt:  project.CreatedAt,
	}
}
