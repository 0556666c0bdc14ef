// Package scheduler recomputes activity dates so that every precedence
// constraint between them is satisfied. It builds an explicit
// dependency DAG, rejects cycles, and processes activities in
// topological order, so predecessor dates are final before any
// successor reads them and a single pass converges.
package scheduler

import (
	"time"

	"github.com/mlefebvre/girder/internal/domain"
)

// Propagate applies all dependency constraints to the given activities
// and returns the ones whose dates changed, with duration recomputed.
// Activities that are not schedulable (wrong type or missing dates)
// are ignored along with any edge touching them. Inputs are not
// mutated.
func Propagate(activities []*domain.WbsItem, deps []domain.Dependency) ([]*domain.WbsItem, error) {
	var eligible []*domain.WbsItem
	for _, a := range activities {
		if a.Type == domain.TypeActivity && a.HasSchedule() {
			eligible = append(eligible, a)
		}
	}

	g := buildGraph(eligible, deps)
	if cycle := g.detectCycle(); cycle != nil {
		return nil, cycle
	}

	// Work on copies so constraint application never leaks into the
	// caller's items.
	working := make(map[string]*domain.WbsItem, len(eligible))
	for _, a := range eligible {
		cp := *a
		start := midnight(*a.StartDate)
		end := midnight(*a.EndDate)
		cp.StartDate = &start
		cp.EndDate = &end
		working[a.ID] = &cp
	}

	for _, id := range g.topoSort() {
		succ := working[id]
		for _, d := range g.incoming[id] {
			applyEdge(succ, working[d.PredecessorID], d)
		}
	}

	var changed []*domain.WbsItem
	for _, a := range eligible {
		w := working[a.ID]
		if w.StartDate.Equal(midnight(*a.StartDate)) && w.EndDate.Equal(midnight(*a.EndDate)) {
			continue
		}
		dur := domain.DaysBetween(*w.StartDate, *w.EndDate) + 1
		w.Duration = &dur
		changed = append(changed, w)
	}
	return changed, nil
}

// applyEdge enforces one precedence constraint, shifting the successor
// forward when violated. Shifts preserve the successor's span: a
// start-floor violation moves both dates by the same delta, an
// end-floor violation moves the end to the floor and recomputes the
// start from the pre-shift span.
func applyEdge(succ, pred *domain.WbsItem, d domain.Dependency) {
	span := domain.DaysBetween(*succ.StartDate, *succ.EndDate)

	switch d.Type {
	case domain.DepFinishToStart, domain.DepStartToStart:
		var floor time.Time
		if d.Type == domain.DepFinishToStart {
			floor = addDays(*pred.EndDate, d.Lag)
		} else {
			floor = addDays(*pred.StartDate, d.Lag)
		}
		if succ.StartDate.Before(floor) {
			delta := domain.DaysBetween(*succ.StartDate, floor)
			newStart := addDays(*succ.StartDate, delta)
			newEnd := addDays(*succ.EndDate, delta)
			succ.StartDate = &newStart
			succ.EndDate = &newEnd
		}

	case domain.DepFinishToFinish, domain.DepStartToFinish:
		var floor time.Time
		if d.Type == domain.DepFinishToFinish {
			floor = addDays(*pred.EndDate, d.Lag)
		} else {
			floor = addDays(*pred.StartDate, d.Lag)
		}
		if succ.EndDate.Before(floor) {
			newEnd := floor
			newStart := addDays(floor, -span)
			succ.StartDate = &newStart
			succ.EndDate = &newEnd
		}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, days int) time.Time {
	return midnight(t).AddDate(0, 0, days)
}
