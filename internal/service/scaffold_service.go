package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
	"github.com/spec-kit/scaffold-report-service/internal/events"
	"github.com/spec-kit/scaffold-report-service/internal/repository"
	"github.com/spec-kit/scaffold-report-service/internal/storage"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// Photo is an uploaded image pending storage.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewScaffoldReport carries the validated input of an assembly report.
type NewScaffoldReport struct {
	ProjectID          int64
	Height             float64
	Width              float64
	Depth              float64
	ProgressPercentage int
	AssemblyNotes      string
}

// ScaffoldService records assembly and disassembly events.
type ScaffoldService struct {
	scaffolds  repository.ScaffoldRepository
	photos     storage.PhotoStore
	dispatcher events.Dispatcher
}

// NewScaffoldService builds the service.
func NewScaffoldService(scaffolds repository.ScaffoldRepository, photos storage.PhotoStore, dispatcher events.Dispatcher) *ScaffoldService {
	return &ScaffoldService{scaffolds: scaffolds, photos: photos, dispatcher: dispatcher}
}

// Report records a new assembly: uploads the photo, computes the
// volume server-side and persists the scaffold for the calling
// technician.
func (s *ScaffoldService) Report(ctx context.Context, reporter domain.Identity, input NewScaffoldReport, photo Photo) (*domain.Scaffold, error) {
	imageURL, err := s.photos.Upload(ctx, photo.Filename, photo.ContentType, photo.Data)
	if err != nil {
		return nil, err
	}

	scaffold := &domain.Scaffold{
		ProjectID:          input.ProjectID,
		UserID:             reporter.UserID,
		Height:             input.Height,
		Width:              input.Width,
		Depth:              input.Depth,
		CubicMeters:        domain.Volume(input.Height, input.Width, input.Depth),
		ProgressPercentage: input.ProgressPercentage,
		AssemblyNotes:      input.AssemblyNotes,
		AssemblyImageURL:   imageURL,
	}
	if err := s.scaffolds.Create(ctx, scaffold); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventScaffoldAssembled,
			Actor:     events.Actor{UserID: reporter.UserID, Role: reporter.Role},
			Timestamp: time.Now(),
			Payload: events.ScaffoldAssembledPayload{
				ScaffoldID:         scaffold.ID,
				ProjectID:          scaffold.ProjectID,
				CubicMeters:        scaffold.CubicMeters,
				ProgressPercentage: scaffold.ProgressPercentage,
			},
		})
	}
	return scaffold, nil
}

// Disassemble closes out a scaffold with its teardown evidence.
func (s *ScaffoldService) Disassemble(ctx context.Context, actor domain.Identity, scaffoldID int64, notes string, photo Photo) (*domain.Scaffold, error) {
	imageURL, err := s.photos.Upload(ctx, photo.Filename, photo.ContentType, photo.Data)
	if err != nil {
		return nil, err
	}

	scaffold, err := s.scaffolds.Disassemble(ctx, scaffoldID, notes, imageURL)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("scaffold", nil)
		}
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventScaffoldDisassembled,
			Actor:     events.Actor{UserID: actor.UserID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.ScaffoldDisassembledPayload{
				ScaffoldID: scaffold.ID,
				ProjectID:  scaffold.ProjectID,
			},
		})
	}
	return scaffold, nil
}

// ListByProject returns all scaffold reports for a project.
func (s *ScaffoldService) ListByProject(ctx context.Context, projectID int64) ([]domain.Scaffold, error) {
	return s.scaffolds.ListByProject(ctx, projectID)
}

// HistoryFor returns the calling technician's own reports.
func (s *ScaffoldService) HistoryFor(ctx context.Context, userID int64) ([]domain.Scaffold, error) {
	return s.scaffolds.ListByUser(ctx, userID)
}
