package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/girder/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func act(id string, start, end time.Time) *domain.WbsItem {
	dur := domain.DaysBetween(start, end) + 1
	return &domain.WbsItem{
		ID:        id,
		ProjectID: "proj",
		Type:      domain.TypeActivity,
		StartDate: &start,
		EndDate:   &end,
		Duration:  &dur,
	}
}

func dep(pred, succ string, t domain.DependencyType, lag int) domain.Dependency {
	return domain.Dependency{ID: pred + "->" + succ, PredecessorID: pred, SuccessorID: succ, Type: t, Lag: lag}
}

func TestPropagate_FinishToStart(t *testing.T) {
	// A ends Jan 10; B runs Jan 5-8. With FS lag 2, B must start Jan 12.
	a := act("a", date(2024, 1, 1), date(2024, 1, 10))
	b := act("b", date(2024, 1, 5), date(2024, 1, 8))

	changed, err := Propagate([]*domain.WbsItem{a, b}, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, 2),
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)

	got := changed[0]
	assert.Equal(t, "b", got.ID)
	assert.True(t, got.StartDate.Equal(date(2024, 1, 12)))
	assert.True(t, got.EndDate.Equal(date(2024, 1, 15)))
	require.NotNil(t, got.Duration)
	assert.Equal(t, 4, *got.Duration, "span preserved across the shift")
}

func TestPropagate_SatisfiedConstraintLeavesDatesAlone(t *testing.T) {
	a := act("a", date(2024, 1, 1), date(2024, 1, 5))
	b := act("b", date(2024, 1, 20), date(2024, 1, 25))

	changed, err := Propagate([]*domain.WbsItem{a, b}, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, changed)
}

func TestPropagate_StartToStart(t *testing.T) {
	a := act("a", date(2024, 2, 10), date(2024, 2, 20))
	b := act("b", date(2024, 2, 5), date(2024, 2, 8))

	changed, err := Propagate([]*domain.WbsItem{a, b}, []domain.Dependency{
		dep("a", "b", domain.DepStartToStart, 3),
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.True(t, changed[0].StartDate.Equal(date(2024, 2, 13)))
	assert.True(t, changed[0].EndDate.Equal(date(2024, 2, 16)))
}

func TestPropagate_FinishToFinish(t *testing.T) {
	a := act("a", date(2024, 3, 1), date(2024, 3, 15))
	b := act("b", date(2024, 3, 2), date(2024, 3, 6))

	changed, err := Propagate([]*domain.WbsItem{a, b}, []domain.Dependency{
		dep("a", "b", domain.DepFinishToFinish, 0),
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	// End moves to the floor, start keeps the 4-day span.
	assert.True(t, changed[0].EndDate.Equal(date(2024, 3, 15)))
	assert.True(t, changed[0].StartDate.Equal(date(2024, 3, 11)))
}

func TestPropagate_StartToFinish(t *testing.T) {
	a := act("a", date(2024, 4, 10), date(2024, 4, 20))
	b := act("b", date(2024, 4, 1), date(2024, 4, 3))

	changed, err := Propagate([]*domain.WbsItem{a, b}, []domain.Dependency{
		dep("a", "b", domain.DepStartToFinish, 1),
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.True(t, changed[0].EndDate.Equal(date(2024, 4, 11)))
	assert.True(t, changed[0].StartDate.Equal(date(2024, 4, 9)))
}

func TestPropagate_NegativeLagLead(t *testing.T) {
	a := act("a", date(2024, 5, 1), date(2024, 5, 10))
	b := act("b", date(2024, 5, 5), date(2024, 5, 7))

	// FS with a 2-day lead: B may start on May 8.
	changed, err := Propagate([]*domain.WbsItem{a, b}, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, -2),
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.True(t, changed[0].StartDate.Equal(date(2024, 5, 8)))
}

func TestPropagate_ChainConvergesInOnePass(t *testing.T) {
	// c -> b -> a in input order; topological processing must still
	// push the whole chain in a single call.
	a := act("a", date(2024, 1, 1), date(2024, 1, 10))
	b := act("b", date(2024, 1, 2), date(2024, 1, 5))
	c := act("c", date(2024, 1, 3), date(2024, 1, 4))

	changed, err := Propagate([]*domain.WbsItem{c, b, a}, []domain.Dependency{
		dep("b", "c", domain.DepFinishToStart, 0),
		dep("a", "b", domain.DepFinishToStart, 0),
	})
	require.NoError(t, err)
	require.Len(t, changed, 2)

	byID := map[string]*domain.WbsItem{}
	for _, w := range changed {
		byID[w.ID] = w
	}
	// b lands after a's end, c after b's shifted end.
	assert.True(t, byID["b"].StartDate.Equal(date(2024, 1, 10)))
	assert.True(t, byID["b"].EndDate.Equal(date(2024, 1, 13)))
	assert.True(t, byID["c"].StartDate.Equal(date(2024, 1, 13)))
	assert.True(t, byID["c"].EndDate.Equal(date(2024, 1, 14)))
}

func TestPropagate_MultiplePredecessorsTakeTightestFloor(t *testing.T) {
	a := act("a", date(2024, 1, 1), date(2024, 1, 10))
	b := act("b", date(2024, 1, 1), date(2024, 1, 20))
	c := act("c", date(2024, 1, 5), date(2024, 1, 6))

	changed, err := Propagate([]*domain.WbsItem{a, b, c}, []domain.Dependency{
		dep("a", "c", domain.DepFinishToStart, 0),
		dep("b", "c", domain.DepFinishToStart, 0),
	})
	require.NoError(t, err)
	require.Len(t, changed, 1)
	// b's end (Jan 20) dominates a's (Jan 10).
	assert.True(t, changed[0].StartDate.Equal(date(2024, 1, 20)))
}

func TestPropagate_SkipsUndatedActivities(t *testing.T) {
	a := act("a", date(2024, 1, 1), date(2024, 1, 10))
	undated := &domain.WbsItem{ID: "u", ProjectID: "proj", Type: domain.TypeActivity}

	changed, err := Propagate([]*domain.WbsItem{a, undated}, []domain.Dependency{
		dep("a", "u", domain.DepFinishToStart, 0),
	})
	require.NoError(t, err)
	assert.Empty(t, changed, "edges into undated activities are dropped, not errors")
}

func TestPropagate_CycleIsFatal(t *testing.T) {
	a := act("a", date(2024, 1, 1), date(2024, 1, 5))
	b := act("b", date(2024, 1, 6), date(2024, 1, 10))

	_, err := Propagate([]*domain.WbsItem{a, b}, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, 0),
		dep("b", "a", domain.DepFinishToStart, 0),
	})
	require.Error(t, err)
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
}

func TestPropagate_DoesNotMutateInputs(t *testing.T) {
	a := act("a", date(2024, 1, 1), date(2024, 1, 10))
	b := act("b", date(2024, 1, 5), date(2024, 1, 8))

	_, err := Propagate([]*domain.WbsItem{a, b}, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, 2),
	})
	require.NoError(t, err)
	assert.True(t, b.StartDate.Equal(date(2024, 1, 5)), "caller's item must be untouched")
}
