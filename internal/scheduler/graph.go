package scheduler

import (
	"fmt"
	"sort"

	"github.com/mlefebvre/girder/internal/domain"
)

// CycleError reports a precedence cycle; finalization refuses to run
// while one exists, since no date assignment can satisfy it.
type CycleError struct {
	PredecessorID string
	SuccessorID   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving %s -> %s", e.PredecessorID, e.SuccessorID)
}

// graph is the dependency DAG over the schedulable activities of one
// project. Edges whose endpoints are not schedulable (missing dates,
// wrong type) are dropped up front.
type graph struct {
	nodes    []string                      // activity ids, input order
	incoming map[string][]domain.Dependency // successor id -> edges into it
	outgoing map[string][]string            // predecessor id -> successor ids
}

func buildGraph(activities []*domain.WbsItem, deps []domain.Dependency) *graph {
	g := &graph{
		incoming: make(map[string][]domain.Dependency),
		outgoing: make(map[string][]string),
	}
	eligible := make(map[string]bool, len(activities))
	for _, a := range activities {
		eligible[a.ID] = true
		g.nodes = append(g.nodes, a.ID)
	}
	for _, d := range deps {
		if !eligible[d.PredecessorID] || !eligible[d.SuccessorID] {
			continue
		}
		g.incoming[d.SuccessorID] = append(g.incoming[d.SuccessorID], d)
		g.outgoing[d.PredecessorID] = append(g.outgoing[d.PredecessorID], d.SuccessorID)
	}
	return g
}

// detectCycle runs a colored DFS over the graph and returns a
// CycleError naming an edge on the first cycle found, or nil.
func (g *graph) detectCycle() *CycleError {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)
	color := make(map[string]int, len(g.nodes))

	var cycle *CycleError
	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, next := range g.outgoing[node] {
			if color[next] == gray {
				cycle = &CycleError{PredecessorID: node, SuccessorID: next}
				return true
			}
			if color[next] == white && visit(next) {
				return true
			}
		}
		color[node] = black
		return false
	}

	for _, node := range g.nodes {
		if color[node] == white && visit(node) {
			return cycle
		}
	}
	return nil
}

// topoSort returns the nodes in an order where every predecessor
// precedes its successors (Kahn's algorithm). Ties are broken by id so
// the order is deterministic regardless of storage return order.
// Assumes detectCycle has already passed.
func (g *graph) topoSort() []string {
	indegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		indegree[node] = len(g.incoming[node])
	}

	var ready []string
	for _, node := range g.nodes {
		if indegree[node] == 0 {
			ready = append(ready, node)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		var unlocked []string
		for _, next := range g.outgoing[node] {
			indegree[next]--
			if indegree[next] == 0 {
				unlocked = append(unlocked, next)
			}
		}
		sort.Strings(unlocked)
		ready = append(ready, unlocked...)
	}
	return order
}
