package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
	"github.com/spec-kit/scaffold-report-service/internal/events"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

type fakeProjectRepo struct {
	nextID      int64
	projects    map[int64]*domain.Project
	assignments map[int64][]int64
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		nextID:      1,
		projects:    make(map[int64]*domain.Project),
		assignments: make(map[int64][]int64),
	}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	project.ID = r.nextID
	project.CreatedAt = time.Now()
	r.nextID++
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.projects, id)
	delete(r.assignments, id)
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *project
	return &clone, nil
}

func (r *fakeProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	var out []domain.Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProjectRepo) ListForUser(_ context.Context, userID int64) ([]domain.Project, error) {
	var out []domain.Project
	for projectID, userIDs := range r.assignments {
		for _, id := range userIDs {
			if id == userID {
				out = append(out, *r.projects[projectID])
			}
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) AssignedUserIDs(_ context.Context, projectID int64) ([]int64, error) {
	return r.assignments[projectID], nil
}

func (r *fakeProjectRepo) ReplaceAssignments(_ context.Context, projectID int64, userIDs []int64) error {
	r.assignments[projectID] = append([]int64(nil), userIDs...)
	return nil
}

func (r *fakeProjectRepo) CountActive(_ context.Context) (int, error) {
	count := 0
	for _, p := range r.projects {
		if p.Status == domain.ProjectStatusActive {
			count++
		}
	}
	return count, nil
}

func adminIdentity() domain.Identity {
	return domain.Identity{UserID: 1, Role: domain.RoleAdmin}
}

func seedProject(t *testing.T, svc *ProjectService, name string) *domain.Project {
	t.Helper()
	project := &domain.Project{ClientID: 1, Name: name}
	require.NoError(t, svc.Create(context.Background(), adminIdentity(), project))
	return project
}

func TestProjectServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProjectRepo()
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventProjectCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := NewProjectService(repo, dispatcher)
	project := &domain.Project{ClientID: 1, Name: "Torre Norte"}
	require.NoError(t, svc.Create(ctx, adminIdentity(), project))

	require.Equal(t, domain.ProjectStatusActive, project.Status)
	require.NotZero(t, project.ID)
	require.Len(t, published, 1)
}

func TestProjectServiceListFor(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProjectRepo()
	svc := NewProjectService(repo, nil)

	first := seedProject(t, svc, "Torre Norte")
	seedProject(t, svc, "Mall Centro")

	require.NoError(t, svc.AssignUsers(ctx, first.ID, []int64{5}))

	t.Run("admin sees everything", func(t *testing.T) {
		projects, err := svc.ListFor(ctx, adminIdentity())
		require.NoError(t, err)
		require.Len(t, projects, 2)
	})

	t.Run("technician sees only assignments", func(t *testing.T) {
		projects, err := svc.ListFor(ctx, domain.Identity{UserID: 5, Role: domain.RoleTechnician})
		require.NoError(t, err)
		require.Len(t, projects, 1)
		require.Equal(t, first.ID, projects[0].ID)
	})

	t.Run("unassigned technician sees nothing", func(t *testing.T) {
		projects, err := svc.ListFor(ctx, domain.Identity{UserID: 9, Role: domain.RoleTechnician})
		require.NoError(t, err)
		require.Empty(t, projects)
	})
}

func TestProjectServiceAssignUsers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProjectRepo()
	svc := NewProjectService(repo, nil)
	project := seedProject(t, svc, "Torre Norte")

	require.NoError(t, svc.AssignUsers(ctx, project.ID, []int64{5, 6}))
	ids, err := svc.AssignedUserIDs(ctx, project.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{5, 6}, ids)

	// Replacing with an empty set clears all assignments.
	require.NoError(t, svc.AssignUsers(ctx, project.ID, []int64{}))
	ids, err = svc.AssignedUserIDs(ctx, project.ID)
	require.NoError(t, err)
	require.Empty(t, ids)

	err = svc.AssignUsers(ctx, 999, []int64{5})
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestProjectServiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(newFakeProjectRepo(), nil)

	_, err := svc.Get(ctx, 999)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	err = svc.Update(ctx, &domain.Project{ID: 999, Name: "X"})
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	err = svc.Delete(ctx, 999)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDashboardServiceSummary(t *testing.T) {
	ctx := context.Background()
	projectRepo := newFakeProjectRepo()
	scaffoldRepo := newFakeScaffoldRepo()

	projectSvc := NewProjectService(projectRepo, nil)
	project := seedProject(t, projectSvc, "Torre Norte")
	completed := seedProject(t, projectSvc, "Mall Centro")
	completed.Status = domain.ProjectStatusCompleted
	require.NoError(t, projectSvc.Update(ctx, completed))

	scaffoldSvc := NewScaffoldService(scaffoldRepo, &fakePhotoStore{}, nil)
	for i := 0; i < 3; i++ {
		_, err := scaffoldSvc.Report(ctx, technicianIdentity(), NewScaffoldReport{
			ProjectID: project.ID, Height: 2, Width: 1, Depth: 1,
		}, testPhoto())
		require.NoError(t, err)
	}

	svc := NewDashboardService(projectRepo, scaffoldRepo)
	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	require.Equal(t, 1, summary.ActiveProjects)
	require.InDelta(t, 6.0, summary.TotalCubicMeters, 1e-9)
	require.Equal(t, 3, summary.RecentReportsCount)
	require.Len(t, summary.RecentReports, 3)
}
