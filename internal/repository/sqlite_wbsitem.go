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

const wbsItemColumns = `id, project_id, parent_id, name, description, level, code, type,
	budgeted_cost, actual_cost, percent_complete, is_top_level,
	start_date, end_date, duration, actual_start_date, actual_end_date,
	created_at, updated_at`

// SQLiteWbsItemRepo implements WbsItemRepo against a SQLite database.
type SQLiteWbsItemRepo struct {
	db db.DBTX
}

// NewSQLiteWbsItemRepo creates a new SQLiteWbsItemRepo.
func NewSQLiteWbsItemRepo(conn db.DBTX) *SQLiteWbsItemRepo {
	return &SQLiteWbsItemRepo{db: conn}
}

func (r *SQLiteWbsItemRepo) Create(ctx context.Context, w *domain.WbsItem) error {
	query := `INSERT INTO wbs_items (` + wbsItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.ProjectID,
		nullableStrToValue(w.ParentID),
		w.Name,
		w.Description,
		w.Level,
		w.Code,
		string(w.Type),
		w.BudgetedCost.String(),
		w.ActualCost.String(),
		w.PercentComplete.String(),
		boolToInt(w.IsTopLevel),
		nullableTimeToString(w.StartDate, dateLayout),
		nullableTimeToString(w.EndDate, dateLayout),
		nullableIntToValue(w.Duration),
		nullableTimeToString(w.ActualStartDate, dateLayout),
		nullableTimeToString(w.ActualEndDate, dateLayout),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting wbs item: %w", err)
	}
	return nil
}

func (r *SQLiteWbsItemRepo) GetByID(ctx context.Context, id string) (*domain.WbsItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	w, err := scanWbsItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wbs item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading wbs item: %w", err)
	}
	return w, nil
}

func (r *SQLiteWbsItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WbsItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE project_id = ? ORDER BY code`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteWbsItemRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.WbsItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE parent_id = ? ORDER BY code`
	return r.list(ctx, query, parentID)
}

func (r *SQLiteWbsItemRepo) ListTopLevel(ctx context.Context, projectID string) ([]*domain.WbsItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items
		WHERE project_id = ? AND parent_id IS NULL ORDER BY code`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteWbsItemRepo) Update(ctx context.Context, w *domain.WbsItem) error {
	query := `UPDATE wbs_items SET parent_id = ?, name = ?, description = ?, level = ?, code = ?,
		type = ?, budgeted_cost = ?, actual_cost = ?, percent_complete = ?, is_top_level = ?,
		start_date = ?, end_date = ?, duration = ?, actual_start_date = ?, actual_end_date = ?,
		updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStrToValue(w.ParentID),
		w.Name,
		w.Description,
		w.Level,
		w.Code,
		string(w.Type),
		w.BudgetedCost.String(),
		w.ActualCost.String(),
		w.PercentComplete.String(),
		boolToInt(w.IsTopLevel),
		nullableTimeToString(w.StartDate, dateLayout),
		nullableTimeToString(w.EndDate, dateLayout),
		nullableIntToValue(w.Duration),
		nullableTimeToString(w.ActualStartDate, dateLayout),
		nullableTimeToString(w.ActualEndDate, dateLayout),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating wbs item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("wbs item %s: %w", w.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteWbsItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wbs_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting wbs item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("wbs item %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteWbsItemRepo) list(ctx context.Context, query string, arg any) ([]*domain.WbsItem, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing wbs items: %w", err)
	}
	defer rows.Close()

	var items []*domain.WbsItem
	for rows.Next() {
		w, err := scanWbsItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wbs item: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs items: %w", err)
	}
	return items, nil
}

func scanWbsItem(row rowScanner) (*domain.WbsItem, error) {
	var w domain.WbsItem
	var parentID sql.NullString
	var itemType, createdAt, updatedAt string
	var budgeted, actual, percent sql.NullString
	var isTopLevel int
	var startDate, endDate, actualStart, actualEnd sql.NullString
	var duration sql.NullInt64

	if err := row.Scan(&w.ID, &w.ProjectID, &parentID, &w.Name, &w.Description,
		&w.Level, &w.Code, &itemType,
		&budgeted, &actual, &percent, &isTopLevel,
		&startDate, &endDate, &duration, &actualStart, &actualEnd,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if parentID.Valid {
		w.ParentID = &parentID.String
	}
	w.Type = domain.WbsItemType(itemType)
	w.BudgetedCost = parseDecimal(budgeted)
	w.ActualCost = parseDecimal(actual)
	w.PercentComplete = parseDecimal(percent)
	w.IsTopLevel = intToBool(isTopLevel)
	w.StartDate = parseNullableTime(startDate, dateLayout)
	w.EndDate = parseNullableTime(endDate, dateLayout)
	w.ActualStartDate = parseNullableTime(actualStart, dateLayout)
	w.ActualEndDate = parseNullableTime(actualEnd, dateLayout)
	if duration.Valid {
		d := int(duration.Int64)
		w.Duration = &d
	}

	var err error
	if w.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}
