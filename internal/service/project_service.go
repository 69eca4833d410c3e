package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
	"github.com/spec-kit/scaffold-report-service/internal/events"
	"github.com/spec-kit/scaffold-report-service/internal/repository"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// ProjectService handles worksite administration and technician
// assignment.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, dispatcher: dispatcher}
}

// ListFor returns the projects visible to the caller: admins see all,
// technicians only those they are assigned to.
func (s *ProjectService) ListFor(ctx context.Context, identity domain.Identity) ([]domain.Project, error) {
	if identity.Role == domain.RoleAdmin {
		return s.projects.List(ctx)
	}
	return s.projects.ListForUser(ctx, identity.UserID)
}

// Get fetches a single project with its client name.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", nil)
		}
		return nil, err
	}
	return project, nil
}

// Create adds a project.
func (s *ProjectService) Create(ctx context.Context, actor domain.Identity, project *domain.Project) error {
	if project.Status == "" {
		project.Status = domain.ProjectStatusActive
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventProjectCreated,
			Actor:     events.Actor{UserID: actor.UserID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.ProjectCreatedPayload{
				ProjectID: project.ID,
				ClientID:  project.ClientID,
				Name:      project.Name,
			},
		})
	}
	return nil
}

// Update modifies a project.
func (s *ProjectService) Update(ctx context.Context, project *domain.Project) error {
	if err := s.projects.Update(ctx, project); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("project", nil)
		}
		return err
	}
	return nil
}

// Delete removes a project and, via cascade, its scaffolds.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("project", nil)
		}
		return err
	}
	return nil
}

// AssignedUserIDs lists the technician ids assigned to a project.
func (s *ProjectService) AssignedUserIDs(ctx context.Context, projectID int64) ([]int64, error) {
	return s.projects.AssignedUserIDs(ctx, projectID)
}

// AssignUsers replaces the technician set for a project.
func (s *ProjectService) AssignUsers(ctx context.Context, projectID int64, userIDs []int64) error {
	if _, err := s.Get(ctx, projectID); err != nil {
		return err
	}
	return s.projects.ReplaceAssignments(ctx, projectID, userIDs)
}
