package wbs

import (
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/girder/internal/domain"
)

// RollupPercent computes the percent complete of the subtree rooted at
// id. Leaves report their own value; parents report the
// budget-weighted mean of their children, falling back to an equal
// weighting when no child carries a budget (a work package full of
// Activities).
func RollupPercent(tree *Tree, id string) decimal.Decimal {
	item := tree.Get(id)
	if item == nil {
		return decimal.Zero
	}
	children := tree.Children(id)
	if len(children) == 0 {
		return item.PercentComplete
	}

	totalWeight := decimal.Zero
	for _, c := range children {
		totalWeight = totalWeight.Add(c.BudgetedCost)
	}

	weighted := decimal.Zero
	if totalWeight.IsZero() {
		for _, c := range children {
			weighted = weighted.Add(RollupPercent(tree, c.ID))
		}
		return weighted.Div(decimal.NewFromInt(int64(len(children))))
	}
	for _, c := range children {
		weighted = weighted.Add(RollupPercent(tree, c.ID).Mul(c.BudgetedCost))
	}
	return weighted.Div(totalWeight)
}

// RollupActualCost sums actual costs across the subtree rooted at id,
// including the root's own recorded cost.
func RollupActualCost(tree *Tree, id string) decimal.Decimal {
	item := tree.Get(id)
	if item == nil {
		return decimal.Zero
	}
	sum := item.ActualCost
	for _, c := range tree.Children(id) {
		sum = sum.Add(RollupActualCost(tree, c.ID))
	}
	return sum
}

// ProjectPercent aggregates percent complete across a project's
// top-level items, weighted by their budgets.
func ProjectPercent(tree *Tree, topLevel []*domain.WbsItem) decimal.Decimal {
	if len(topLevel) == 0 {
		return decimal.Zero
	}
	totalWeight := decimal.Zero
	for _, it := range topLevel {
		totalWeight = totalWeight.Add(it.BudgetedCost)
	}
	weighted := decimal.Zero
	if totalWeight.IsZero() {
		for _, it := range topLevel {
			weighted = weighted.Add(RollupPercent(tree, it.ID))
		}
		return weighted.Div(decimal.NewFromInt(int64(len(topLevel))))
	}
	for _, it := range topLevel {
		weighted = weighted.Add(RollupPercent(tree, it.ID).Mul(it.BudgetedCost))
	}
	return weighted.Div(totalWeight)
}
