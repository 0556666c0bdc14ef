package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mlefebvre/girder/internal/db"
	"github.com/mlefebvre/girder/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo against a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO dependencies (id, predecessor_id, successor_id, type, lag, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.PredecessorID, d.SuccessorID, string(d.Type), d.Lag,
		d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) GetByID(ctx context.Context, id string) (*domain.Dependency, error) {
	query := `SELECT id, predecessor_id, successor_id, type, lag, created_at
		FROM dependencies WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	d, err := scanDependency(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dependency %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading dependency: %w", err)
	}
	return d, nil
}

// ListByProject returns every dependency whose endpoints belong to the
// given project. Both endpoints always share a project, so joining on
// the predecessor side is sufficient.
func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	query := `SELECT d.id, d.predecessor_id, d.successor_id, d.type, d.lag, d.created_at
		FROM dependencies d
		JOIN wbs_items w ON d.predecessor_id = w.id
		WHERE w.project_id = ?`
	return r.listQuery(ctx, query, projectID)
}

func (r *SQLiteDependencyRepo) ListPredecessors(ctx context.Context, successorID string) ([]domain.Dependency, error) {
	query := `SELECT id, predecessor_id, successor_id, type, lag, created_at
		FROM dependencies WHERE successor_id = ?`
	return r.listQuery(ctx, query, successorID)
}

func (r *SQLiteDependencyRepo) ListSuccessors(ctx context.Context, predecessorID string) ([]domain.Dependency, error) {
	query := `SELECT id, predecessor_id, successor_id, type, lag, created_at
		FROM dependencies WHERE predecessor_id = ?`
	return r.listQuery(ctx, query, predecessorID)
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dependencies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("dependency %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDependencyRepo) listQuery(ctx context.Context, query string, arg any) ([]domain.Dependency, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var deps []domain.Dependency
	for rows.Next() {
		d, err := scanDependency(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		deps = append(deps, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}

func scanDependency(row rowScanner) (*domain.Dependency, error) {
	var d domain.Dependency
	var depType, createdAt string
	if err := row.Scan(&d.ID, &d.PredecessorID, &d.SuccessorID, &depType, &d.Lag, &createdAt); err != nil {
		return nil, err
	}
	d.Type = domain.DependencyType(depType)
	var err error
	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &d, nil
}
