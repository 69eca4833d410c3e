package service

import (
	"context"
	"io"

	"github.com/spec-kit/scaffold-report-service/internal/export"
	"github.com/spec-kit/scaffold-report-service/internal/repository"
)

// ExportService renders per-project scaffold reports as documents.
type ExportService struct {
	projects  *ProjectService
	scaffolds repository.ScaffoldRepository
}

// NewExportService builds the service.
func NewExportService(projects *ProjectService, scaffolds repository.ScaffoldRepository) *ExportService {
	return &ExportService{projects: projects, scaffolds: scaffolds}
}

// WriteProjectPDF streams the PDF report for a project. Returns the
// project name for the download filename.
func (s *ExportService) WriteProjectPDF(ctx context.Context, projectID int64, w io.Writer) (string, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return "", err
	}
	scaffolds, err := s.scaffolds.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	return project.Name, export.WriteProjectPDF(w, project, scaffolds)
}

// BuildProjectExcel renders the xlsx report for a project. Returns the
// project name for the download filename.
func (s *ExportService) BuildProjectExcel(ctx context.Context, projectID int64) (string, []byte, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return "", nil, err
	}
	scaffolds, err := s.scaffolds.ListByProject(ctx, projectID)
	if err != nil {
		return "", nil, err
	}
	data, err := export.BuildProjectExcel(project, scaffolds)
	if err != nil {
		return "", nil, err
	}
	return project.Name, data, nil
}
