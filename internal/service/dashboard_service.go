package service

import (
	"context"
	"time"

	"github.com/spec-kit/scaffold-report-service/internal/repository"
)

const recentReportLimit = 5

// DashboardSummary aggregates the admin landing page numbers.
type DashboardSummary struct {
	ActiveProjects     int
	TotalCubicMeters   float64
	RecentReportsCount int
	RecentReports      []repository.RecentReport
}

// DashboardService computes admin dashboard aggregates.
type DashboardService struct {
	projects  repository.ProjectRepository
	scaffolds repository.ScaffoldRepository
}

// NewDashboardService builds the service.
func NewDashboardService(projects repository.ProjectRepository, scaffolds repository.ScaffoldRepository) *DashboardService {
	return &DashboardService{projects: projects, scaffolds: scaffolds}
}

// Summary returns active project count, total reported volume, report
// count over the last 24 hours and the most recent reports.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	activeProjects, err := s.projects.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	totalCubicMeters, err := s.scaffolds.SumCubicMeters(ctx)
	if err != nil {
		return nil, err
	}

	recentCount, err := s.scaffolds.CountSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	recent, err := s.scaffolds.ListRecent(ctx, recentReportLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		ActiveProjects:     activeProjects,
		TotalCubicMeters:   totalCubicMeters,
		RecentReportsCount: recentCount,
		RecentReports:      recent,
	}, nil
}
