// Package budget describes contract between navigation engine and resource
// budget which owns heavy media allocation. Engine supplies distance hints,
// budget decides what stays loaded.
package budget

import (
	"cmp"
	"math"
	"slices"

	"go.uber.org/zap"

	"storynav/common"
)

const (
	// NeverEvict is distance of resources which do not belong to any page.
	NeverEvict = -1
	// Unknown is distance of page resources before first distance
	// computation reached their page.
	Unknown = math.MaxInt32
)

// MediaCounts is number of media elements per kind.
type MediaCounts struct {
	Audio int
	Video int
}

// Get returns count for media kind.
func (mc MediaCounts) Get(kind common.MediaKind) int {
	if kind == common.MediaKindAudio {
		return mc.Audio
	}
	return mc.Video
}

// Limits are caps for simultaneously allocated media elements.
type Limits struct {
	MaxAudio int
	MaxVideo int
	// Reserve is added to number of elements in the story so inserted ads
	// could have media too.
	Reserve int
}

// MaxCounts caps story media count plus reserve by limits.
func (l Limits) MaxCounts(audio, video int) MediaCounts {
	return MediaCounts{
		Audio: min(audio+l.Reserve, l.MaxAudio),
		Video: min(video+l.Reserve, l.MaxVideo),
	}
}

// Root is the story side of the resource budget.
type Root interface {
	// ElementDistance returns distance of the page containing element,
	// NeverEvict for elements outside of pages.
	ElementDistance(elementID string) int
	MaxMediaElementCounts() MediaCounts
	// Element returns id of the root story element.
	Element() string
}

type element struct {
	id   string
	kind common.MediaKind
}

// Pool is simple resource budget: for every media kind it keeps closest
// elements allocated up to root provided maximum.
type Pool struct {
	log       *zap.Logger
	root      Root
	elements  []element
	allocated map[string]bool
}

func NewPool(root Root, log *zap.Logger) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{log: log.Named("budget"), root: root, allocated: make(map[string]bool)}
}

// Register adds media element to the pool.
func (p *Pool) Register(id string, kind common.MediaKind) {
	if slices.ContainsFunc(p.elements, func(e element) bool { return e.id == id }) {
		return
	}
	p.elements = append(p.elements, element{id: id, kind: kind})
}

func (p *Pool) Allocated(id string) bool {
	return p.allocated[id]
}

// AllocatedIDs returns allocated element ids in registration order.
func (p *Pool) AllocatedIDs() []string {
	var res []string
	for _, e := range p.elements {
		if p.allocated[e.id] {
			res = append(res, e.id)
		}
	}
	return res
}

// Refresh re-reads distances and reallocates media. Newly allocated and
// evicted element ids are returned.
func (p *Pool) Refresh() (allocated, evicted []string) {
	limits := p.root.MaxMediaElementCounts()
	next := make(map[string]bool, len(p.allocated))

	for _, kind := range []common.MediaKind{common.MediaKindAudio, common.MediaKindVideo} {
		type ranked struct {
			element
			distance int
			order    int
		}
		var candidates []ranked
		for i, e := range p.elements {
			if e.kind == kind {
				candidates = append(candidates, ranked{element: e, distance: p.root.ElementDistance(e.id), order: i})
			}
		}
		slices.SortFunc(candidates, func(a, b ranked) int {
			return cmp.Or(cmp.Compare(a.distance, b.distance), cmp.Compare(a.order, b.order))
		})
		slots := limits.Get(kind)
		for _, c := range candidates {
			if c.distance == NeverEvict || slots > 0 {
				next[c.id] = true
				slots--
			}
		}
	}

	for _, e := range p.elements {
		switch {
		case next[e.id] && !p.allocated[e.id]:
			allocated = append(allocated, e.id)
		case !next[e.id] && p.allocated[e.id]:
			evicted = append(evicted, e.id)
		}
	}
	p.allocated = next
	if len(allocated) > 0 || len(evicted) > 0 {
		p.log.Debug("Media reallocated", zap.String("root", p.root.Element()),
			zap.Strings("allocated", allocated), zap.Strings("evicted", evicted))
	}
	return allocated, evicted
}
