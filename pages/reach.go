package pages

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// directed builds gonum view of the navigation graph, node ids are arena
// slots.
func (g *Graph) directed() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for s := range g.nodes {
		dg.AddNode(simple.Node(s))
	}
	var adj []int32
	for s := range g.nodes {
		adj = g.AdjacentSlots(int32(s), adj[:0])
		for _, t := range adj {
			// gonum does not allow self loops
			if t == int32(s) {
				continue
			}
			dg.SetEdge(dg.NewEdge(simple.Node(s), simple.Node(t)))
		}
	}
	return dg
}

// Reachable returns ids of pages which could be navigated to from page with
// given id, in reading order. Starting page is included.
func (g *Graph) Reachable(from string) []string {
	s, ok := g.slots[from]
	if !ok {
		return nil
	}
	dg := g.directed()
	seen := make([]bool, len(g.nodes))

	var bf traverse.BreadthFirst
	bf.Walk(dg, dg.Node(int64(s)), func(n graph.Node, _ int) bool {
		seen[n.ID()] = true
		return false
	})

	res := make([]string, 0, len(g.nodes))
	for i, yes := range seen {
		if yes {
			res = append(res, g.nodes[i].page.ID)
		}
	}
	return res
}

// Unreachable returns pages reader could never get to starting from the
// first page.
func (g *Graph) Unreachable() []string {
	if len(g.nodes) == 0 {
		return nil
	}
	reached := make(map[string]bool, len(g.nodes))
	for _, id := range g.Reachable(g.nodes[0].page.ID) {
		reached[id] = true
	}
	var res []string
	for i := range g.nodes {
		if id := g.nodes[i].page.ID; !reached[id] {
			res = append(res, id)
		}
	}
	return res
}
