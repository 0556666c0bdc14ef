package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WbsItem struct {
	ID          string
	ProjectID   string
	ParentID    *string
	Name        string
	Description string
	Level       int    // depth in the tree, 1-based
	Code        string // dotted hierarchical code, e.g. "1.2.1"
	Type        WbsItemType

	// Cost. Activities carry no budget of their own; their cost rolls
	// up into the owning work package.
	BudgetedCost    decimal.Decimal
	ActualCost      decimal.Decimal
	PercentComplete decimal.Decimal // 0-100

	IsTopLevel bool

	// Schedule. Set on Activities only.
	StartDate       *time.Time
	EndDate         *time.Time
	Duration        *int // whole days, inclusive of both endpoints
	ActualStartDate *time.Time
	ActualEndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSchedule reports whether both planned dates are set.
func (w *WbsItem) HasSchedule() bool {
	return w.StartDate != nil && w.EndDate != nil
}

// SpanDays returns the inclusive day count between the planned start
// and end dates, or 0 when either date is missing.
func (w *WbsItem) SpanDays() int {
	if !w.HasSchedule() {
		return 0
	}
	return DaysBetween(*w.StartDate, *w.EndDate) + 1
}

// DaysBetween returns the number of whole days from a to b, ignoring
// the time-of-day component. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

type Dependency struct {
	ID            string
	PredecessorID string
	SuccessorID   string
	Type          DependencyType
	Lag           int // days; negative values express leads
	CreatedAt     time.Time
}
