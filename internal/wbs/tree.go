package wbs

import (
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/girder/internal/domain"
)

// Tree is an in-memory index over one project's WBS items. Validation
// walks parents and siblings against this snapshot instead of issuing
// repeated store lookups.
type Tree struct {
	items    map[string]*domain.WbsItem
	children map[string][]*domain.WbsItem
}

// NewTree indexes the given items by id and parent.
func NewTree(items []*domain.WbsItem) *Tree {
	t := &Tree{
		items:    make(map[string]*domain.WbsItem, len(items)),
		children: make(map[string][]*domain.WbsItem),
	}
	for _, it := range items {
		t.items[it.ID] = it
		if it.ParentID != nil {
			t.children[*it.ParentID] = append(t.children[*it.ParentID], it)
		}
	}
	return t
}

// Get returns the item with the given id, or nil.
func (t *Tree) Get(id string) *domain.WbsItem {
	return t.items[id]
}

// Children returns the direct children of the item with the given id.
func (t *Tree) Children(id string) []*domain.WbsItem {
	return t.children[id]
}

// Ancestors returns the chain of ancestors of the item with the given
// id, nearest first. The walk is iterative and stops on a missing or
// repeated parent, so a corrupt parent link cannot loop forever.
func (t *Tree) Ancestors(id string) []*domain.WbsItem {
	var chain []*domain.WbsItem
	seen := map[string]bool{id: true}
	cur := t.items[id]
	for cur != nil && cur.ParentID != nil {
		parent := t.items[*cur.ParentID]
		if parent == nil || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		chain = append(chain, parent)
		cur = parent
	}
	return chain
}

// ChildBudgetSum returns the summed budgeted cost of the direct
// non-Activity children of parentID, skipping excludeID. Activities
// carry no budget and are never counted.
func (t *Tree) ChildBudgetSum(parentID, excludeID string) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range t.children[parentID] {
		if c.ID == excludeID || c.Type == domain.TypeActivity {
			continue
		}
		sum = sum.Add(c.BudgetedCost)
	}
	return sum
}
