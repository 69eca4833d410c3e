package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
)

// RecentReport is a dashboard row summarizing a recent scaffold report.
type RecentReport struct {
	ID                 int64
	CreatedAt          time.Time
	ProgressPercentage int
	ProjectID          int64
	ProjectName        string
	ReporterName       string
}

// ScaffoldRepository encapsulates scaffold report persistence and the
// aggregate queries the dashboard needs.
type ScaffoldRepository interface {
	Create(ctx context.Context, scaffold *domain.Scaffold) error
	Disassemble(ctx context.Context, id int64, notes string, imageURL string) (*domain.Scaffold, error)
	GetByID(ctx context.Context, id int64) (*domain.Scaffold, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Scaffold, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Scaffold, error)
	SumCubicMeters(ctx context.Context) (float64, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	ListRecent(ctx context.Context, limit int) ([]RecentReport, error)
}

type scaffoldRepository struct {
	pool *pgxpool.Pool
}

// NewScaffoldRepository returns a Postgres-backed implementation.
func NewScaffoldRepository(pool *pgxpool.Pool) ScaffoldRepository {
	return &scaffoldRepository{pool: pool}
}

func (r *scaffoldRepository) Create(ctx context.Context, scaffold *domain.Scaffold) error {
	const query = `
        INSERT INTO scaffolds
            (project_id, user_id, height, width, depth, cubic_meters, progress_percentage, assembly_notes, assembly_image_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, status, assembly_created_at`
	return r.pool.QueryRow(ctx, query,
		scaffold.ProjectID,
		scaffold.UserID,
		scaffold.Height,
		scaffold.Width,
		scaffold.Depth,
		scaffold.CubicMeters,
		scaffold.ProgressPercentage,
		scaffold.AssemblyNotes,
		scaffold.AssemblyImageURL,
	).Scan(&scaffold.ID, &scaffold.Status, &scaffold.AssemblyCreatedAt)
}

func (r *scaffoldRepository) Disassemble(ctx context.Context, id int64, notes string, imageURL string) (*domain.Scaffold, error) {
	const query = `
        UPDATE scaffolds
        SET status='disassembled', disassembly_notes=$1, disassembly_image_url=$2, disassembled_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, notes, imageURL, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

const scaffoldColumns = `
        s.id, s.project_id, s.user_id, s.height, s.width, s.depth, s.cubic_meters,
        s.progress_percentage, s.assembly_notes, s.assembly_image_url, s.assembly_created_at,
        s.status, s.disassembly_notes, s.disassembly_image_url, s.disassembled_at`

func (r *scaffoldRepository) GetByID(ctx context.Context, id int64) (*domain.Scaffold, error) {
	query := `SELECT` + scaffoldColumns + `, (u.first_name || ' ' || u.last_name), ''
        FROM scaffolds s JOIN users u ON s.user_id = u.id WHERE s.id=$1`
	var scaffold domain.Scaffold
	if err := r.scanScaffold(r.pool.QueryRow(ctx, query, id), &scaffold); err != nil {
		return nil, err
	}
	return &scaffold, nil
}

func (r *scaffoldRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Scaffold, error) {
	query := `SELECT` + scaffoldColumns + `, (u.first_name || ' ' || u.last_name), ''
        FROM scaffolds s JOIN users u ON s.user_id = u.id
        WHERE s.project_id=$1 ORDER BY s.assembly_created_at DESC`
	return r.queryScaffolds(ctx, query, projectID)
}

func (r *scaffoldRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Scaffold, error) {
	query := `SELECT` + scaffoldColumns + `, '', p.name
        FROM scaffolds s JOIN projects p ON s.project_id = p.id
        WHERE s.user_id=$1 ORDER BY s.assembly_created_at DESC`
	return r.queryScaffolds(ctx, query, userID)
}

func (r *scaffoldRepository) queryScaffolds(ctx context.Context, query string, args ...any) ([]domain.Scaffold, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scaffolds := make([]domain.Scaffold, 0)
	for rows.Next() {
		var scaffold domain.Scaffold
		if err := r.scanScaffold(rows, &scaffold); err != nil {
			return nil, err
		}
		scaffolds = append(scaffolds, scaffold)
	}
	return scaffolds, rows.Err()
}

func (r *scaffoldRepository) scanScaffold(row pgx.Row, scaffold *domain.Scaffold) error {
	return row.Scan(
		&scaffold.ID,
		&scaffold.ProjectID,
		&scaffold.UserID,
		&scaffold.Height,
		&scaffold.Width,
		&scaffold.Depth,
		&scaffold.CubicMeters,
		&scaffold.ProgressPercentage,
		&scaffold.AssemblyNotes,
		&scaffold.AssemblyImageURL,
		&scaffold.AssemblyCreatedAt,
		&scaffold.Status,
		&scaffold.DisassemblyNotes,
		&scaffold.DisassemblyImageURL,
		&scaffold.DisassembledAt,
		&scaffold.ReporterName,
		&scaffold.ProjectName,
	)
}

func (r *scaffoldRepository) SumCubicMeters(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(cubic_meters), 0) FROM scaffolds`).Scan(&total)
	return total, err
}

func (r *scaffoldRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM scaffolds WHERE assembly_created_at >= $1`, since,
	).Scan(&count)
	return count, err
}

func (r *scaffoldRepository) ListRecent(ctx context.Context, limit int) ([]RecentReport, error) {
	const query = `
        SELECT s.id, s.assembly_created_at, s.progress_percentage, p.id, p.name,
               (u.first_name || ' ' || u.last_name)
        FROM scaffolds s
        JOIN projects p ON s.project_id = p.id
        JOIN users u ON s.user_id = u.id
        ORDER BY s.assembly_created_at DESC
        LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]RecentReport, 0, limit)
	for rows.Next() {
		var report RecentReport
		if err := rows.Scan(
			&report.ID,
			&report.CreatedAt,
			&report.ProgressPercentage,
			&report.ProjectID,
			&report.ProjectName,
			&report.ReporterName,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
