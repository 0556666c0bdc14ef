package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mlefebvre/girder/internal/domain"
)

type ProjectService interface {
	// Create validates and persists the project, seeding the three
	// default top-level Summary items from the project budget.
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	// UpdateBudget changes the project budget. It is only permitted
	// while the WBS still consists of exactly the three default
	// top-level items; the delta is absorbed by the
	// "Procurement & Construction" item.
	UpdateBudget(ctx context.Context, id string, budget decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}

// WbsItemPatch is a partial update to a WBS item. Nil fields are left
// unchanged.
type WbsItemPatch struct {
	Name            *string
	Description     *string
	Type            *domain.WbsItemType
	BudgetedCost    *decimal.Decimal
	ActualCost      *decimal.Decimal
	PercentComplete *decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	ActualStartDate *time.Time
	ActualEndDate   *time.Time
}

type WbsService interface {
	// Create admits the candidate against the hierarchy and budget
	// rules and persists it with a server-assigned id, code and level.
	Create(ctx context.Context, candidate *domain.WbsItem) (*domain.WbsItem, error)
	// Update applies the patch if the result still satisfies every
	// rule, re-reading parent and children inside one transaction.
	Update(ctx context.Context, id string, patch WbsItemPatch) (*domain.WbsItem, error)
	GetByID(ctx context.Context, id string) (*domain.WbsItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WbsItem, error)
	Delete(ctx context.Context, id string) error
	// Progress reports the rolled-up percent complete and actual cost
	// of the subtree rooted at the given item.
	Progress(ctx context.Context, id string) (*ProgressReport, error)
}

// ProgressReport is a read-only roll-up over one WBS subtree.
type ProgressReport struct {
	ItemID          string
	PercentComplete decimal.Decimal
	ActualCost      decimal.Decimal
	BudgetedCost    decimal.Decimal
}

type DependencyService interface {
	// Create validates endpoint typing (Activity on both ends, same
	// project, no self-reference) and persists the edge.
	Create(ctx context.Context, d *domain.Dependency) (*domain.Dependency, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
	Delete(ctx context.Context, id string) error
}

// FinalizeResult summarizes one schedule-finalization run. Per-item
// persistence failures are collected, never fatal to the batch.
type FinalizeResult struct {
	UpdatedCount int
	ErrorCount   int
	Errors       []string
}

type ScheduleService interface {
	// FinalizeSchedule recomputes activity dates for the project so
	// that every dependency constraint holds and writes back the items
	// whose dates changed. A dependency cycle fails the whole call
	// before anything is written.
	FinalizeSchedule(ctx context.Context, projectID string) (*FinalizeResult, error)
}
