package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// ProjectRepository encapsulates project persistence including the
// technician assignment set.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Project, error)
	AssignedUserIDs(ctx context.Context, projectID int64) ([]int64, error)
	ReplaceAssignments(ctx context.Context, projectID int64, userIDs []int64) error
	CountActive(ctx context.Context) (int, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository returns a Postgres-backed implementation.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (client_id, name, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		project.ClientID,
		project.Name,
		project.Status,
	).Scan(&project.ID, &project.CreatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `UPDATE projects SET client_id=$1, name=$2, status=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		project.ClientID,
		project.Name,
		project.Status,
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const projectSelect = `
        SELECT p.id, p.client_id, p.name, p.status, p.created_at, COALESCE(c.name, '')
        FROM projects p LEFT JOIN clients c ON p.client_id = c.id`

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	if err := r.pool.QueryRow(ctx, projectSelect+` WHERE p.id=$1`, id).Scan(
		&project.ID,
		&project.ClientID,
		&project.Name,
		&project.Status,
		&project.CreatedAt,
		&project.ClientName,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	return r.queryProjects(ctx, projectSelect+` ORDER BY p.created_at DESC`)
}

func (r *projectRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Project, error) {
	query := projectSelect + `
        JOIN project_users pu ON pu.project_id = p.id
        WHERE pu.user_id=$1 ORDER BY p.created_at DESC`
	return r.queryProjects(ctx, query, userID)
}

func (r *projectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.ClientID,
			&project.Name,
			&project.Status,
			&project.CreatedAt,
			&project.ClientName,
		); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *projectRepository) AssignedUserIDs(ctx context.Context, projectID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM project_users WHERE project_id=$1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplaceAssignments swaps the full technician set for a project in
// one transaction so readers never observe a partially updated set.
func (r *projectRepository) ReplaceAssignments(ctx context.Context, projectID int64, userIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM project_users WHERE project_id=$1`, projectID); err != nil {
		return err
	}
	for _, userID := range userIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_users (project_id, user_id) VALUES ($1, $2)`,
			projectID, userID,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *projectRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE status='active'`).Scan(&count)
	return count, err
}
