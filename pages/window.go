package pages

// Position is placement of a page relative to the active one in desktop
// panels layout.
type Position struct {
	Page   *Page
	Offset int
}

// MeasureMutator separates reading layout from writing it, host batches
// measure callbacks before mutate ones to avoid layout thrashing.
type MeasureMutator interface {
	MeasureMutate(measure, mutate func())
}

// Window returns positions of the active page and up to two pages on each
// side of it, ordered from farthest previous to farthest next.
func (g *Graph) Window(active *Page) []Position {
	if active == nil {
		return nil
	}
	var before []Position
	for p, off := active, -1; off >= -2; off-- {
		if p = g.PreviousPage(p); p == nil {
			break
		}
		before = append(before, Position{Page: p, Offset: off})
	}
	res := make([]Position, 0, 5)
	for i := len(before) - 1; i >= 0; i-- {
		res = append(res, before[i])
	}
	res = append(res, Position{Page: active, Offset: 0})
	for p, off := active, 1; off <= 2; off++ {
		id, ok := g.NextPageID(p.ID, false)
		if !ok {
			break
		}
		p = g.Page(id)
		res = append(res, Position{Page: p, Offset: off})
	}
	return res
}

// ApplyWindow clears all desktop positions and writes new ones around active
// page. Without MeasureMutator changes are applied immediately. Deferred write
// is skipped when window was cleared or applied again in the meantime.
func (g *Graph) ApplyWindow(mm MeasureMutator, active *Page) {
	g.windowGen++
	gen := g.windowGen

	var stale []*Page
	measure := func() {
		stale = stale[:0]
		for i := range g.nodes {
			if _, ok := g.nodes[i].page.DesktopPosition(); ok {
				stale = append(stale, g.nodes[i].page)
			}
		}
	}
	mutate := func() {
		if gen != g.windowGen {
			return
		}
		for _, p := range stale {
			p.clearDesktopPosition()
		}
		for _, pos := range g.Window(active) {
			pos.Page.setDesktopPosition(pos.Offset)
		}
	}
	if mm == nil {
		measure()
		mutate()
		return
	}
	mm.MeasureMutate(measure, mutate)
}

// ClearWindow removes desktop positions from all pages.
func (g *Graph) ClearWindow() {
	g.windowGen++
	for i := range g.nodes {
		g.nodes[i].page.clearDesktopPosition()
	}
}
