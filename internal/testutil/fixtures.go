package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/girder/internal/domain"
)

// Project options
type ProjectOption func(*domain.Project)

func WithBudget(amount int64) ProjectOption {
	return func(p *domain.Project) {
		p.Budget = decimal.NewFromInt(amount)
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = &end
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  "Test Site",
		Budget:    decimal.NewFromInt(100000),
		Currency:  "USD",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WbsItem options
type WbsOption func(*domain.WbsItem)

func WithParent(parent *domain.WbsItem) WbsOption {
	return func(w *domain.WbsItem) {
		id := parent.ID
		w.ParentID = &id
		w.IsTopLevel = false
		w.Level = parent.Level + 1
	}
}

func WithItemBudget(amount int64) WbsOption {
	return func(w *domain.WbsItem) {
		w.BudgetedCost = decimal.NewFromInt(amount)
	}
}

func WithCode(code string) WbsOption {
	return func(w *domain.WbsItem) {
		w.Code = code
	}
}

func WithDates(start, end time.Time) WbsOption {
	return func(w *domain.WbsItem) {
		w.StartDate = &start
		w.EndDate = &end
		d := domain.DaysBetween(start, end) + 1
		w.Duration = &d
	}
}

// NewTestWbsItem builds a WBS item of the given type. Top-level by
// default; use WithParent to place it in a tree, WithCode to avoid
// code collisions within one project.
func NewTestWbsItem(projectID, name string, itemType domain.WbsItemType, opts ...WbsOption) *domain.WbsItem {
	now := time.Now().UTC()
	w := &domain.WbsItem{
		ID:              uuid.New().String(),
		ProjectID:       projectID,
		Name:            name,
		Level:           1,
		Code:            "1",
		Type:            itemType,
		BudgetedCost:    decimal.Zero,
		ActualCost:      decimal.Zero,
		PercentComplete: decimal.Zero,
		IsTopLevel:      true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewTestDependency links two activities with the given type and lag.
func NewTestDependency(predecessorID, successorID string, depType domain.DependencyType, lag int) *domain.Dependency {
	return &domain.Dependency{
		ID:            uuid.New().String(),
		PredecessorID: predecessorID,
		SuccessorID:   successorID,
		Type:          depType,
		Lag:           lag,
		CreatedAt:     time.Now().UTC(),
	}
}
