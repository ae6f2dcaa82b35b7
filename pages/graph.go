package pages

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// ErrUnknownPage is returned when page id cannot be resolved in the graph.
var ErrUnknownPage = errors.New("unknown page")

// LinkKind names explicit navigation edge attached to a page.
type LinkKind int

const (
	AdvanceTo LinkKind = iota
	AutoAdvanceTo
	ReturnTo
	linkKinds
)

func (k LinkKind) String() string {
	switch k {
	case AdvanceTo:
		return "advance-to"
	case AutoAdvanceTo:
		return "auto-advance-to"
	case ReturnTo:
		return "return-to"
	}
	return fmt.Sprintf("link(%d)", int(k))
}

const noSlot int32 = -1

// PathSource gives read access to navigation path which participates in
// previous page resolution.
type PathSource interface {
	Path() []string
}

type node struct {
	page     *Page
	links    [linkKinds]int32
	branches []int32
}

// Graph keeps pages in reading order together with navigation edges between
// them. Page ids are interned into arena slots, slot is the reading order
// index of the page.
type Graph struct {
	log *zap.Logger

	nodes      []node
	slots      map[string]int32
	duplicates map[string]int

	branching bool
	allowAds  bool
	path      PathSource

	// bumped by every window change, deferred writes of older windows are
	// dropped
	windowGen uint64
}

func NewGraph(log *zap.Logger) *Graph {
	if log == nil {
		log = zap.NewNop()
	}
	return &Graph{
		log:        log,
		slots:      make(map[string]int32),
		duplicates: make(map[string]int),
		allowAds:   true,
	}
}

// SetBranching controls whether branch targets participate in adjacency.
func (g *Graph) SetBranching(on bool) {
	g.branching = on
}

func (g *Graph) Branching() bool {
	return g.branching
}

// SetAllowAds is ad insertion policy used by InsertPage.
func (g *Graph) SetAllowAds(on bool) {
	g.allowAds = on
}

// UsePath connects navigation path used for "previous" resolution.
func (g *Graph) UsePath(ps PathSource) {
	g.path = ps
}

// Add appends page in reading order. Page without id gets default one,
// duplicated id is renamed. Final page id is returned.
func (g *Graph) Add(p *Page) string {
	id := p.ID
	if id == "" {
		id = DefaultPageID
	}
	if _, exists := g.slots[id]; exists {
		orig := id
		for {
			g.duplicates[orig]++
			id = fmt.Sprintf("%s__%d", orig, g.duplicates[orig])
			if _, taken := g.slots[id]; !taken {
				break
			}
		}
		g.log.Warn("Duplicate page id, renaming", zap.String("id", orig), zap.String("new", id))
	}

	slot := int32(len(g.nodes))
	p.ID, p.Index = id, int(slot)
	n := node{page: p}
	for i := range n.links {
		n.links[i] = noSlot
	}
	g.nodes = append(g.nodes, n)
	g.slots[id] = slot
	return id
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// Slot returns arena slot of the page.
func (g *Graph) Slot(id string) (int32, bool) {
	s, ok := g.slots[id]
	return s, ok
}

func (g *Graph) Page(id string) *Page {
	if s, ok := g.slots[id]; ok {
		return g.nodes[s].page
	}
	return nil
}

// PageAt returns page by reading order index, nil when out of range.
func (g *Graph) PageAt(i int) *Page {
	if i < 0 || i >= len(g.nodes) {
		return nil
	}
	return g.nodes[i].page
}

// Pages returns all pages in reading order.
func (g *Graph) Pages() []*Page {
	res := make([]*Page, len(g.nodes))
	for i := range g.nodes {
		res[i] = g.nodes[i].page
	}
	return res
}

func (g *Graph) First() *Page {
	return g.PageAt(0)
}

func (g *Graph) Last() *Page {
	return g.PageAt(len(g.nodes) - 1)
}

func (g *Graph) resolve(id string) (int32, error) {
	s, ok := g.slots[id]
	if !ok {
		return noSlot, fmt.Errorf("%w: %q", ErrUnknownPage, id)
	}
	return s, nil
}

// Link sets explicit edge of the given kind.
func (g *Graph) Link(from string, kind LinkKind, to string) error {
	f, err := g.resolve(from)
	if err != nil {
		return err
	}
	t, err := g.resolve(to)
	if err != nil {
		return fmt.Errorf("%s of %q: %w", kind, from, err)
	}
	g.nodes[f].links[kind] = t
	return nil
}

// Linked returns explicit edge target.
func (g *Graph) Linked(from string, kind LinkKind) (string, bool) {
	f, ok := g.slots[from]
	if !ok || g.nodes[f].links[kind] == noSlot {
		return "", false
	}
	return g.nodes[g.nodes[f].links[kind]].page.ID, true
}

// AddBranch records branch (goToPage action) target of the page.
func (g *Graph) AddBranch(from, to string) error {
	f, err := g.resolve(from)
	if err != nil {
		return err
	}
	t, err := g.resolve(to)
	if err != nil {
		return fmt.Errorf("branch of %q: %w", from, err)
	}
	if !slices.Contains(g.nodes[f].branches, t) {
		g.nodes[f].branches = append(g.nodes[f].branches, t)
	}
	return nil
}

// Branches returns branch targets of the page in declaration order.
func (g *Graph) Branches(id string) []string {
	s, ok := g.slots[id]
	if !ok {
		return nil
	}
	res := make([]string, 0, len(g.nodes[s].branches))
	for _, b := range g.nodes[s].branches {
		res = append(res, g.nodes[b].page.ID)
	}
	return res
}

func (g *Graph) nextSlot(s int32, auto bool) int32 {
	n := &g.nodes[s]
	if auto && n.links[AutoAdvanceTo] != noSlot {
		return n.links[AutoAdvanceTo]
	}
	if n.links[AdvanceTo] != noSlot {
		return n.links[AdvanceTo]
	}
	if int(s)+1 < len(g.nodes) {
		return s + 1
	}
	return noSlot
}

func (g *Graph) previousSlot(s int32) int32 {
	n := &g.nodes[s]
	if n.links[ReturnTo] != noSlot {
		return n.links[ReturnTo]
	}
	if g.path != nil {
		path := g.path.Path()
		id := n.page.ID
		for i := len(path) - 1; i > 0; i-- {
			if path[i] != id {
				continue
			}
			if p, ok := g.slots[path[i-1]]; ok {
				return p
			}
			break
		}
	}
	if s > 0 {
		return s - 1
	}
	return noSlot
}

// NextPageID resolves page following id: auto-advance-to (only when auto is
// requested), advance-to, next page in reading order.
func (g *Graph) NextPageID(id string, auto bool) (string, bool) {
	s, ok := g.slots[id]
	if !ok {
		return "", false
	}
	if n := g.nextSlot(s, auto); n != noSlot {
		return g.nodes[n].page.ID, true
	}
	return "", false
}

// PreviousPageID resolves page preceding id: return-to, page which precedes
// last occurrence of id in navigation path, previous page in reading order.
func (g *Graph) PreviousPageID(id string) (string, bool) {
	s, ok := g.slots[id]
	if !ok {
		return "", false
	}
	if p := g.previousSlot(s); p != noSlot {
		return g.nodes[p].page.ID, true
	}
	return "", false
}

// AdjacentSlots appends to dst slots one step away from s: next (manual),
// previous and branch targets when branching is on. Result has no
// duplicates.
func (g *Graph) AdjacentSlots(s int32, dst []int32) []int32 {
	start := len(dst)
	add := func(t int32) {
		if t == noSlot || slices.Contains(dst[start:], t) {
			return
		}
		dst = append(dst, t)
	}
	add(g.nextSlot(s, false))
	add(g.previousSlot(s))
	if g.branching {
		for _, b := range g.nodes[s].branches {
			add(b)
		}
	}
	return dst
}

// AdjacentPageIDs returns ids of the pages one navigation step away.
func (g *Graph) AdjacentPageIDs(id string) []string {
	s, ok := g.slots[id]
	if !ok {
		return nil
	}
	adj := g.AdjacentSlots(s, nil)
	res := make([]string, len(adj))
	for i, a := range adj {
		res[i] = g.nodes[a].page.ID
	}
	return res
}

// NextPage returns page following p, auto-advance edges included.
func (g *Graph) NextPage(p *Page) *Page {
	if id, ok := g.NextPageID(p.ID, true); ok {
		return g.Page(id)
	}
	return nil
}

func (g *Graph) PreviousPage(p *Page) *Page {
	if id, ok := g.PreviousPageID(p.ID); ok {
		return g.Page(id)
	}
	return nil
}

// InsertPage splices inserted page right after before page. Insertion is
// refused without any change when inserted page is an ad and ads are not
// allowed or when before page is the end of the story.
func (g *Graph) InsertPage(beforeID, insertedID string) bool {
	b, okb := g.slots[beforeID]
	ins, oki := g.slots[insertedID]
	if !okb || !oki {
		g.log.Warn("Unable to insert page", zap.String("before", beforeID), zap.String("inserted", insertedID))
		return false
	}
	if g.nodes[ins].page.Ad && !g.allowAds {
		g.log.Debug("Ad insertion is not allowed", zap.String("inserted", insertedID))
		return false
	}
	next := g.nextSlot(b, true)
	if next == noSlot {
		return false
	}

	g.nodes[b].links[AdvanceTo] = ins
	g.nodes[b].links[AutoAdvanceTo] = ins
	g.nodes[ins].links[ReturnTo] = b
	if next != ins {
		g.nodes[ins].links[AdvanceTo] = next
		g.nodes[next].links[ReturnTo] = ins
	}
	return true
}
