package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/wbs"
)

func TestWbsService_CreateAssignsPlacement(t *testing.T) {
	h := newHarness(t)
	_, byName := mustCreateProject(t, h, 1_000_000)
	ctx := context.Background()
	parent := byName["Procurement & Construction"]

	wp, err := h.Wbs.Create(ctx, &domain.WbsItem{
		ProjectID:    parent.ProjectID,
		ParentID:     &parent.ID,
		Name:         "Civil Works",
		Type:         domain.TypeWorkPackage,
		BudgetedCost: decimal.NewFromInt(200_000),
	})
	require.NoError(t, err)
	require.NotEmpty(t, wp.ID)
	require.Equal(t, "2.1", wp.Code)
	require.Equal(t, 2, wp.Level)
	require.False(t, wp.IsTopLevel)

	// A sibling gets the next ordinal.
	wp2, err := h.Wbs.Create(ctx, &domain.WbsItem{
		ProjectID:    parent.ProjectID,
		ParentID:     &parent.ID,
		Name:         "Electrical",
		Type:         domain.TypeWorkPackage,
		BudgetedCost: decimal.NewFromInt(100_000),
	})
	require.NoError(t, err)
	require.Equal(t, "2.2", wp2.Code)

	act, err := h.Wbs.Create(ctx, &domain.WbsItem{
		ProjectID: parent.ProjectID,
		ParentID:  &wp.ID,
		Name:      "Excavation",
		Type:      domain.TypeActivity,
	})
	require.NoError(t, err)
	require.Equal(t, "2.1.1", act.Code)
	require.Equal(t, 3, act.Level)
}

func TestWbsService_CreateAfterSiblingDeleteGetsFreshCode(t *testing.T) {
	h := newHarness(t)
	_, byName := mustCreateProject(t, h, 1_000_000)
	ctx := context.Background()
	parent := byName["Procurement & Construction"]

	wp, err := h.Wbs.Create(ctx, &domain.WbsItem{
		ProjectID: parent.ProjectID,
		ParentID:  &parent.ID,
		Name:      "Civil Works",
		Type:      domain.TypeWorkPackage,
	})
	require.NoError(t, err)

	first := mustCreateActivity(t, h, wp, "Excavation", day(2025, 1, 1), day(2025, 1, 5))
	second := mustCreateActivity(t, h, wp, "Foundations", day(2025, 1, 6), day(2025, 1, 10))
	require.Equal(t, "2.1.1", first.Code)
	require.Equal(t, "2.1.2", second.Code)

	// Removing a non-last sibling must not let the next create collide
	// with the survivor's code.
	require.NoError(t, h.Wbs.Delete(ctx, first.ID))

	third := mustCreateActivity(t, h, wp, "Backfill", day(2025, 1, 11), day(2025, 1, 12))
	require.Equal(t, "2.1.3", third.Code)
}

func TestWbsService_CreateRejectsNonSummaryAtTopLevel(t *testing.T) {
	h := newHarness(t)
	proj, _ := mustCreateProject(t, h, 1_000_000)

	_, err := h.Wbs.Create(context.Background(), &domain.WbsItem{
		ProjectID: proj.ID,
		Name:      "Loose Activity",
		Type:      domain.TypeActivity,
	})
	requireRuleCode(t, err, wbs.CodeTypeHierarchy)
}

func TestWbsService_CreateRejectsOverBudgetChild(t *testing.T) {
	h := newHarness(t)
	_, byName := mustCreateProject(t, h, 1_000_000)
	parent := byName["Engineering & Design"] // holds 50k

	_, err := h.Wbs.Create(context.Background(), &domain.WbsItem{
		ProjectID:    parent.ProjectID,
		ParentID:     &parent.ID,
		Name:         "Oversized",
		Type:         domain.TypeWorkPackage,
		BudgetedCost: decimal.NewFromInt(60_000),
	})
	requireRuleCode(t, err, wbs.CodeBudgetContainment)
}

func TestWbsService_CreateRejectsUnknownType(t *testing.T) {
	h := newHarness(t)
	proj, _ := mustCreateProject(t, h, 1_000_000)

	_, err := h.Wbs.Create(context.Background(), &domain.WbsItem{
		ProjectID: proj.ID,
		Name:      "Mystery",
		Type:      domain.WbsItemType("Milestone"),
	})
	requireRuleCode(t, err, wbs.CodeTypeHierarchy)
}

func TestWbsService_CreateUnknownProject(t *testing.T) {
	h := newHarness(t)

	_, err := h.Wbs.Create(context.Background(), &domain.WbsItem{
		ProjectID: "missing",
		Name:      "Orphan",
		Type:      domain.TypeSummary,
	})
	requireRuleCode(t, err, wbs.CodeNotFound)
}

func TestWbsService_UpdateBudgetWithinParent(t *testing.T) {
	h := newHarness(t)
	_, byName := mustCreateProject(t, h, 1_000_000)
	ctx := context.Background()
	parent := byName["Procurement & Construction"]

	wp, err := h.Wbs.Create(ctx, &domain.WbsItem{
		ProjectID:    parent.ProjectID,
		ParentID:     &parent.ID,
		Name:         "Civil Works",
		Type:         domain.TypeWorkPackage,
		BudgetedCost: decimal.NewFromInt(200_000),
	})
	require.NoError(t, err)

	raise := decimal.NewFromInt(800_000)
	updated, err := h.Wbs.Update(ctx, wp.ID, WbsItemPatch{BudgetedCost: &raise})
	require.NoError(t, err)
	require.True(t, updated.BudgetedCost.Equal(raise))

	tooMuch := decimal.NewFromInt(900_000)
	_, err = h.Wbs.Update(ctx, wp.ID, WbsItemPatch{BudgetedCost: &tooMuch})
	requireRuleCode(t, err, wbs.CodeBudgetContainment)
}

func TestWbsService_UpdateDatesRecomputesDuration(t *testing.T) {
	h := newHarness(t)
	_, byName := mustCreateProject(t, h, 1_000_000)
	ctx := context.Background()
	parent := byName["Procurement & Construction"]

	wp, err := h.Wbs.Create(ctx, &domain.WbsItem{
		ProjectID: parent.ProjectID,
		ParentID:  &parent.ID,
		Name:      "Civil Works",
		Type:      domain.TypeWorkPackage,
	})
	require.NoError(t, err)
	act := mustCreateActivity(t, h, wp, "Excavation", day(2025, 1, 10), day(2025, 1, 12))

	newEnd := day(2025, 1, 19)
	updated, err := h.Wbs.Update(ctx, act.ID, WbsItemPatch{EndDate: &newEnd})
	require.NoError(t, err)
	require.NotNil(t, updated.Duration)
	require.Equal(t, 10, *updated.Duration)
}

func TestWbsService_DeleteRules(t *testing.T) {
	h := newHarness(t)
	_, byName := mustCreateProject(t, h, 1_000_000)
	ctx := context.Background()
	parent := byName["Procurement & Construction"]

	wp, err := h.Wbs.Create(ctx, &domain.WbsItem{
		ProjectID: parent.ProjectID,
		ParentID:  &parent.ID,
		Name:      "Civil Works",
		Type:      domain.TypeWorkPackage,
	})
	require.NoError(t, err)
	act := mustCreateActivity(t, h, wp, "Excavation", day(2025, 1, 10), day(2025, 1, 12))

	// Seeded top-level categories and non-empty parents stay put.
	requireRuleCode(t, h.Wbs.Delete(ctx, parent.ID), wbs.CodeDeleteRestricted)
	requireRuleCode(t, h.Wbs.Delete(ctx, wp.ID), wbs.CodeDeleteRestricted)

	require.NoError(t, h.Wbs.Delete(ctx, act.ID))
	require.NoError(t, h.Wbs.Delete(ctx, wp.ID))
}

func TestWbsService_ProgressRollsUpSubtree(t *testing.T) {
	h := newHarness(t)
	_, byName := mustCreateProject(t, h, 1_000_000)
	ctx := context.Background()
	parent := byName["Procurement & Construction"]

	wp, err := h.Wbs.Create(ctx, &domain.WbsItem{
		ProjectID: parent.ProjectID,
		ParentID:  &parent.ID,
		Name:      "Civil Works",
		Type:      domain.TypeWorkPackage,
	})
	require.NoError(t, err)

	a := mustCreateActivity(t, h, wp, "Excavation", day(2025, 1, 10), day(2025, 1, 12))
	b := mustCreateActivity(t, h, wp, "Foundations", day(2025, 1, 13), day(2025, 1, 20))

	full := decimal.NewFromInt(100)
	spentA := decimal.NewFromInt(4_000)
	_, err = h.Wbs.Update(ctx, a.ID, WbsItemPatch{PercentComplete: &full, ActualCost: &spentA})
	require.NoError(t, err)
	half := decimal.NewFromInt(50)
	spentB := decimal.NewFromInt(1_000)
	_, err = h.Wbs.Update(ctx, b.ID, WbsItemPatch{PercentComplete: &half, ActualCost: &spentB})
	require.NoError(t, err)

	report, err := h.Wbs.Progress(ctx, wp.ID)
	require.NoError(t, err)
	// Activities carry no budget, so the roll-up weighs them equally.
	require.True(t, report.PercentComplete.Equal(decimal.NewFromInt(75)), "got %s", report.PercentComplete)
	require.True(t, report.ActualCost.Equal(decimal.NewFromInt(5_000)), "got %s", report.ActualCost)
}
