package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/girder/internal/domain"
)

func simpleActs(ids ...string) []*domain.WbsItem {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	var out []*domain.WbsItem
	for _, id := range ids {
		out = append(out, act(id, start, end))
	}
	return out
}

func TestBuildGraphDropsIneligibleEdges(t *testing.T) {
	acts := simpleActs("a", "b")
	g := buildGraph(acts, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, 0),
		dep("a", "ghost", domain.DepFinishToStart, 0),
		dep("ghost", "b", domain.DepFinishToStart, 0),
	})
	assert.Len(t, g.incoming["b"], 1)
	assert.Empty(t, g.incoming["ghost"])
}

func TestDetectCycle(t *testing.T) {
	acts := simpleActs("a", "b", "c")

	acyclic := buildGraph(acts, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, 0),
		dep("b", "c", domain.DepFinishToStart, 0),
		dep("a", "c", domain.DepFinishToStart, 0),
	})
	assert.Nil(t, acyclic.detectCycle())

	cyclic := buildGraph(acts, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, 0),
		dep("b", "c", domain.DepFinishToStart, 0),
		dep("c", "a", domain.DepFinishToStart, 0),
	})
	require.NotNil(t, cyclic.detectCycle())

	selfLoop := buildGraph(acts, []domain.Dependency{
		dep("a", "a", domain.DepFinishToStart, 0),
	})
	assert.NotNil(t, selfLoop.detectCycle())
}

func TestTopoSortRespectsEdges(t *testing.T) {
	acts := simpleActs("c", "a", "b", "d")
	g := buildGraph(acts, []domain.Dependency{
		dep("a", "b", domain.DepFinishToStart, 0),
		dep("b", "c", domain.DepFinishToStart, 0),
		dep("a", "d", domain.DepFinishToStart, 0),
	})

	order := g.topoSort()
	require.Len(t, order, 4)

	pos := map[string]int{}
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
	assert.Less(t, pos["a"], pos["d"])
}

func TestTopoSortIsDeterministic(t *testing.T) {
	// No edges: order falls back to sorted ids regardless of input order.
	g1 := buildGraph(simpleActs("b", "a", "c"), nil)
	g2 := buildGraph(simpleActs("c", "b", "a"), nil)
	assert.Equal(t, []string{"a", "b", "c"}, g1.topoSort())
	assert.Equal(t, g1.topoSort(), g2.topoSort())
}
