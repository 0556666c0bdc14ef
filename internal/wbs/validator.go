// Package wbs enforces the admission rules of the work breakdown
// structure: the Summary / WorkPackage / Activity hierarchy, budget
// containment between parents and children, and dependency endpoint
// typing. All checks run against an in-memory Tree snapshot and never
// write; callers persist only after a nil error.
package wbs

import (
	"github.com/mlefebvre/girder/internal/domain"
)

// CheckCreate decides whether candidate may be inserted into the tree.
// Rules are evaluated in order and the first violation is returned.
func CheckCreate(candidate *domain.WbsItem, tree *Tree) error {
	if candidate.ParentID == nil {
		if candidate.Type != domain.TypeSummary {
			return violation(CodeTypeHierarchy, "Top-level WBS items must be of type 'Summary'")
		}
		return checkActivityBudget(candidate)
	}

	parent := tree.Get(*candidate.ParentID)
	if parent == nil {
		return violation(CodeNotFound, "Parent WBS item not found")
	}

	if err := checkActivityBudget(candidate); err != nil {
		return err
	}
	if candidate.Type != domain.TypeActivity {
		if err := checkBudgetAgainstParent(candidate, parent, tree, ""); err != nil {
			return err
		}
	}
	if !domain.ChildTypeAllowed(parent.Type, candidate.Type) {
		return violation(CodeTypeHierarchy,
			"A '%s' item cannot contain a '%s' item", parent.Type, candidate.Type)
	}
	if candidate.Type == domain.TypeWorkPackage {
		if err := checkSingleWorkPackageLevel(parent, tree); err != nil {
			return err
		}
	}
	return nil
}

// CheckUpdate decides whether the existing item may take the updated
// shape. The updated item carries the same ID; parent and children are
// resolved from the tree snapshot.
func CheckUpdate(existing, updated *domain.WbsItem, tree *Tree) error {
	if existing.ParentID == nil && updated.Type != domain.TypeSummary {
		return violation(CodeTypeHierarchy, "Top-level WBS items must be of type 'Summary'")
	}
	if err := checkActivityBudget(updated); err != nil {
		return err
	}

	if existing.ParentID != nil {
		parent := tree.Get(*existing.ParentID)
		if parent == nil {
			return violation(CodeNotFound, "Parent WBS item not found")
		}
		if updated.Type != existing.Type && !domain.ChildTypeAllowed(parent.Type, updated.Type) {
			return violation(CodeTypeHierarchy,
				"A '%s' item cannot contain a '%s' item", parent.Type, updated.Type)
		}
		if updated.Type != domain.TypeActivity {
			if err := checkBudgetAgainstParent(updated, parent, tree, existing.ID); err != nil {
				return err
			}
		}
		if updated.Type == domain.TypeWorkPackage && existing.Type != domain.TypeWorkPackage {
			if err := checkSingleWorkPackageLevel(parent, tree); err != nil {
				return err
			}
		}
	}

	children := tree.Children(existing.ID)
	if updated.Type != existing.Type {
		for _, c := range children {
			if !domain.ChildTypeAllowed(updated.Type, c.Type) {
				return violation(CodeTypeHierarchy,
					"Cannot change type to '%s': item has a '%s' child", updated.Type, c.Type)
			}
		}
	}
	if updated.Type != domain.TypeActivity {
		childSum := tree.ChildBudgetSum(existing.ID, "")
		if childSum.GreaterThan(updated.BudgetedCost) {
			return violation(CodeBudgetContainment,
				"Combined budget of child items (%s) exceeds the new budget (%s)",
				childSum, updated.BudgetedCost)
		}
	}
	return nil
}

// CheckDelete decides whether the item may be removed. Top-level items
// are permanent, and items with children must be emptied first.
func CheckDelete(item *domain.WbsItem, tree *Tree) error {
	if item.ParentID == nil {
		return violation(CodeDeleteRestricted, "Top-level WBS items cannot be deleted")
	}
	if len(tree.Children(item.ID)) > 0 {
		return violation(CodeDeleteRestricted, "WBS items with children cannot be deleted; remove children first")
	}
	return nil
}

// CheckDependency validates a precedence edge between two resolved
// endpoints.
func CheckDependency(d *domain.Dependency, predecessor, successor *domain.WbsItem) error {
	if d.PredecessorID == d.SuccessorID {
		return violation(CodeInvalidDependency, "An activity cannot depend on itself")
	}
	if predecessor == nil || successor == nil {
		return violation(CodeNotFound, "Dependency endpoints must be existing WBS items")
	}
	if predecessor.Type != domain.TypeActivity || successor.Type != domain.TypeActivity {
		return violation(CodeInvalidDependency, "Dependencies may only link 'Activity' items")
	}
	if predecessor.ProjectID != successor.ProjectID {
		return violation(CodeInvalidDependency, "Dependencies cannot cross projects")
	}
	if !d.Type.IsValid() {
		return violation(CodeInvalidDependency, "Dependency type must be one of FS, SS, FF, SF")
	}
	return nil
}

func checkActivityBudget(item *domain.WbsItem) error {
	if item.Type == domain.TypeActivity && !item.BudgetedCost.IsZero() {
		return violation(CodeBudgetContainment,
			"Activity items carry no budget; budgeted cost must be 0")
	}
	return nil
}

// checkBudgetAgainstParent enforces the two containment rules: the
// item's own budget must fit under the parent's, and together with its
// non-Activity siblings it must not overflow the parent's budget.
// excludeID removes the item's previous incarnation from the sibling
// sum on update.
func checkBudgetAgainstParent(item, parent *domain.WbsItem, tree *Tree, excludeID string) error {
	if item.BudgetedCost.GreaterThan(parent.BudgetedCost) {
		return violation(CodeBudgetContainment,
			"Budgeted cost (%s) exceeds parent's budget (%s)",
			item.BudgetedCost, parent.BudgetedCost)
	}
	siblingSum := tree.ChildBudgetSum(parent.ID, excludeID)
	if siblingSum.Add(item.BudgetedCost).GreaterThan(parent.BudgetedCost) {
		return violation(CodeBudgetContainment,
			"Combined budget of sibling items (%s) exceeds parent's budget (%s)",
			siblingSum.Add(item.BudgetedCost), parent.BudgetedCost)
	}
	return nil
}

// checkSingleWorkPackageLevel rejects a WorkPackage placement when any
// ancestor of the parent (or the parent itself) is already a
// WorkPackage. Exactly one WorkPackage level is allowed on any path
// from a top-level Summary to a leaf.
func checkSingleWorkPackageLevel(parent *domain.WbsItem, tree *Tree) error {
	if parent.Type == domain.TypeWorkPackage {
		return violation(CodeTypeHierarchy, "Only one level of 'WorkPackage' is allowed")
	}
	for _, anc := range tree.Ancestors(parent.ID) {
		if anc.Type == domain.TypeWorkPackage {
			return violation(CodeTypeHierarchy, "Only one level of 'WorkPackage' is allowed")
		}
	}
	return nil
}
