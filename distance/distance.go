// Package distance computes how far every page is from the active one. Result
// is a preloading priority for resource budget: pages close to the active one
// keep their heavy resources, far ones could be evicted.
package distance

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"storynav/pages"
)

const unreached int32 = -1

// Options change graph traversal.
type Options struct {
	// Branching adds branch targets to adjacency and warms up page we came
	// from.
	Branching bool
	// CrossDocumentSwipe means host could swipe to another story after the
	// last page, so there is no replay to keep warm.
	CrossDocumentSwipe bool
	// Flat puts every page at distance 0, used by vertical (crawler) layout
	// where everything is visible at once.
	Flat bool
}

// Calculator keeps traversal tables between computations, it is not safe
// for concurrent use.
type Calculator struct {
	log   *zap.Logger
	graph *pages.Graph
	path  pages.PathSource

	dist  []int32
	queue []int32
	adj   []int32
}

func New(g *pages.Graph, path pages.PathSource, log *zap.Logger) *Calculator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Calculator{log: log.Named("distance"), graph: g, path: path}
}

// Compute runs breadth first search from the active page and applies
// loop-back and branch warm up augmentations.
func (c *Calculator) Compute(activeID string, opts Options) (*Result, error) {
	active, ok := c.graph.Slot(activeID)
	if !ok {
		return nil, fmt.Errorf("unable to compute distances: %w: %q", pages.ErrUnknownPage, activeID)
	}

	n := c.graph.Len()
	c.dist = slices.Grow(c.dist[:0], n)[:n]

	if opts.Flat {
		for i := range c.dist {
			c.dist[i] = 0
		}
		return c.result(), nil
	}

	for i := range c.dist {
		c.dist[i] = unreached
	}
	c.dist[active] = 0
	c.queue = append(c.queue[:0], active)
	for head := 0; head < len(c.queue); head++ {
		u := c.queue[head]
		next := c.dist[u] + 1
		c.adj = c.graph.AdjacentSlots(u, c.adj[:0])
		for _, v := range c.adj {
			if d := c.dist[v]; d != unreached && d <= next {
				continue
			}
			// distance only goes down, revised page is expanded again
			c.dist[v] = next
			c.queue = append(c.queue, v)
		}
	}

	if int(active) == n-1 && n > 1 && !opts.CrossDocumentSwipe {
		c.dist[0] = 1
	}
	if opts.Branching {
		if prev, ok := c.predecessor(activeID); ok && prev != active {
			c.dist[prev] = 1
		}
	}

	c.log.Debug("Distances computed", zap.String("active", activeID), zap.Int("visited", len(c.queue)))
	return c.result(), nil
}

// predecessor finds page preceding last occurrence of the active page in
// navigation path.
func (c *Calculator) predecessor(activeID string) (int32, bool) {
	if c.path == nil {
		return noSlot, false
	}
	path := c.path.Path()
	for i := len(path) - 1; i > 0; i-- {
		if path[i] == activeID {
			return c.graph.Slot(path[i-1])
		}
	}
	return noSlot, false
}

const noSlot int32 = -1

func (c *Calculator) result() *Result {
	return &Result{graph: c.graph, dist: slices.Clone(c.dist)}
}

// Result is distance of every reached page, indexed by reading order.
type Result struct {
	graph *pages.Graph
	dist  []int32
}

// Distance returns distance of the page, false when page was not reached.
func (r *Result) Distance(id string) (int, bool) {
	s, ok := r.graph.Slot(id)
	if !ok || int(s) >= len(r.dist) || r.dist[s] == unreached {
		return 0, false
	}
	return int(r.dist[s]), true
}

// Map returns distances of all reached pages.
func (r *Result) Map() map[string]int {
	res := make(map[string]int, len(r.dist))
	for s, d := range r.dist {
		if d != unreached {
			res[r.graph.PageAt(s).ID] = int(d)
		}
	}
	return res
}

// ByDistance returns page ids grouped by distance, index is distance. Ids
// in every group are in reading order, every id is listed once.
func (r *Result) ByDistance() [][]string {
	var res [][]string
	for s, d := range r.dist {
		if d == unreached {
			continue
		}
		for int(d) >= len(res) {
			res = append(res, nil)
		}
		res[d] = append(res[d], r.graph.PageAt(s).ID)
	}
	return res
}

// Apply hands distances to pages one at a time. Pages which were not reached
// keep whatever distance they had.
func (r *Result) Apply() {
	for s, d := range r.dist {
		if d == unreached {
			continue
		}
		if p := r.graph.PageAt(s); p != nil {
			p.SetDistance(int(d))
		}
	}
}
