// Package navigation drives story page transitions. Controller decides which
// page is active, runs every transition as a sequence of frame callbacks,
// keeps navigation path and hands distance hints to the resource budget.
//
// Controller is not safe for concurrent use: all calls, including Listener
// callbacks, happen on the frame loop goroutine.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"storynav/budget"
	"storynav/common"
	"storynav/distance"
	"storynav/frame"
	"storynav/history"
	"storynav/layout"
	"storynav/pages"
)

var (
	// ErrSuperseded resolves transition which was overtaken by a newer one
	// before its phases completed.
	ErrSuperseded = errors.New("transition superseded")
	ErrEmptyStory = errors.New("story has no pages")
)

// BackgroundAudioID identifies story background audio in resource budget.
const BackgroundAudioID = "background-audio"

const defaultInitialContentTimeout = 8 * time.Second

// Options are engine switches.
type Options struct {
	Branching             bool
	CrossDocumentSwipe    bool
	CanInsertAutomaticAd  bool
	RepaintWorkaround     bool
	InitialContentTimeout time.Duration
	Layout                layout.Options
	Limits                budget.Limits
}

// Repainter is implemented by surfaces of rendering engines which do not
// repaint newly visible page without a nudge.
type Repainter interface {
	Repaint()
}

// Controller states, see stateName for the full list.
type (
	state interface {
		isState()
	}
	idle          struct{}
	pendingAccess struct {
		target string
	}
	committing struct {
		gen uint64
	}
)

func (idle) isState()          {}
func (pendingAccess) isState() {}
func (committing) isState()    {}

func stateName(s state) string {
	switch s := s.(type) {
	case idle:
		return "idle"
	case pendingAccess:
		return "pending-access(" + s.target + ")"
	case committing:
		return fmt.Sprintf("committing(%d)", s.gen)
	default:
		panic(fmt.Sprintf("unexpected controller state %T", s))
	}
}

// commit is one transition in flight.
type commit struct {
	gen    uint64
	t      *Transition
	old    *pages.Page
	target *pages.Page
	// pages left active by superseded transitions
	deactivate []*pages.Page
	step       int
}

type Controller struct {
	log     *zap.Logger
	pageLog *zap.Logger
	opts    Options
	ctx     context.Context

	story   *pages.Story
	graph   *pages.Graph
	loop    *frame.Loop
	path    *history.Stack
	calc    *distance.Calculator
	layout  *layout.Machine
	surface layout.Surface
	store   *Store
	pool    *budget.Pool
	events  dispatcher

	state      state
	gen        uint64
	inflight   *commit
	leftover   []*pages.Page
	active     *pages.Page
	navigated  bool
	authorized bool
	owners     map[string]*pages.Page
	distances  *distance.Result
}

// New creates controller for the story. Gate could be nil when story has no
// access restrictions.
func New(story *pages.Story, loop *frame.Loop, path *history.Stack, surface layout.Surface, gate AccessGate, opts Options, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if surface == nil {
		surface = nopSurface{}
	}
	if opts.InitialContentTimeout <= 0 {
		opts.InitialContentTimeout = defaultInitialContentTimeout
	}
	log = log.Named("navigation")

	g := story.Graph
	g.UsePath(path)
	g.SetBranching(opts.Branching)
	g.SetAllowAds(opts.CanInsertAutomaticAd)

	c := &Controller{
		log:        log,
		pageLog:    log,
		opts:       opts,
		ctx:        context.Background(),
		story:      story,
		graph:      g,
		loop:       loop,
		path:       path,
		calc:       distance.New(g, path, log),
		layout:     layout.NewMachine(g, surface, loop, log),
		surface:    surface,
		store:      NewStore(opts.CanInsertAutomaticAd),
		state:      idle{},
		authorized: gate == nil,
		owners:     make(map[string]*pages.Page),
	}
	c.events.frame = loop.Frame
	c.pool = budget.NewPool(c, log)
	for _, p := range g.Pages() {
		c.registerMedia(p)
	}
	if gate != nil {
		c.authorized = gate.FirstAuthorizationsCompleted()
		gate.OnApplyAuthorizations(func() {
			c.loop.Post(c.applyAuthorizations)
		})
	}
	return c
}

func (c *Controller) registerMedia(p *pages.Page) {
	for _, m := range p.Media {
		c.owners[m.ID] = p
		c.pool.Register(m.ID, m.Kind)
	}
}

// Subscribe adds event listener.
func (c *Controller) Subscribe(l Listener) {
	c.events.subscribe(l)
}

// Active returns active page, nil before the first navigation.
func (c *Controller) Active() *pages.Page {
	return c.active
}

func (c *Controller) Store() *Store {
	return c.store
}

func (c *Controller) Graph() *pages.Graph {
	return c.graph
}

func (c *Controller) Story() *pages.Story {
	return c.story
}

// Path returns navigation path.
func (c *Controller) Path() []string {
	return c.path.Path()
}

// Pool returns resource budget fed by the controller.
func (c *Controller) Pool() *budget.Pool {
	return c.pool
}

// Distances returns result of the last distance computation.
func (c *Controller) Distances() *distance.Result {
	return c.distances
}

// Pending returns page waiting for access authorizations.
func (c *Controller) Pending() (string, bool) {
	if s, ok := c.state.(pendingAccess); ok {
		return s.target, true
	}
	return "", false
}

// State describes what controller is doing.
func (c *Controller) State() string {
	return stateName(c.state)
}

// settle returns controller to committing or idle state depending on whether
// transition is still in flight.
func (c *Controller) settle() {
	if c.inflight != nil {
		c.state = committing{gen: c.inflight.gen}
		return
	}
	c.state = idle{}
}

// SwitchTo navigates to the target page. Returned transition resolves after
// all phases ran, immediately when there is nothing to do or navigation has
// to wait for access authorizations.
func (c *Controller) SwitchTo(ctx context.Context, targetID string, dir common.Direction) *Transition {
	target := c.graph.Page(targetID)
	if target == nil {
		return resolved(targetID, fmt.Errorf("unable to switch page: %w: %q", pages.ErrUnknownPage, targetID))
	}
	if c.active == target {
		return resolved(targetID, nil)
	}

	if target.AccessProtected && !c.authorized {
		c.log.Debug("Page waits for access authorizations", zap.String("target", targetID))
		c.state = pendingAccess{target: targetID}
		return resolved(targetID, nil)
	}
	if target.AccessHidden {
		c.log.Debug("Page is hidden by access, requesting access UI", zap.String("target", targetID))
		c.store.SetAccessOpen(true)
		c.events.emit(common.EventKindAccessRequested, targetID, target.Index)
		c.state = pendingAccess{target: targetID}
		return resolved(targetID, nil)
	}
	return c.commit(ctx, target, dir)
}

func (c *Controller) commit(ctx context.Context, target *pages.Page, dir common.Direction) *Transition {
	old := c.active
	if c.inflight != nil {
		c.supersede(c.inflight)
	}

	c.gen++
	cm := &commit{
		gen:    c.gen,
		t:      newTransition(target.ID),
		old:    old,
		target: target,
	}
	for _, p := range c.leftover {
		if p != old && p != target && !slices.Contains(cm.deactivate, p) {
			cm.deactivate = append(cm.deactivate, p)
		}
	}
	c.leftover = nil
	c.inflight = cm
	c.state = committing{gen: cm.gen}
	c.active = target

	if !target.IsAd() {
		if err := c.path.Update(target.ID, dir); err != nil {
			c.log.Warn("Unable to persist navigation path", zap.Error(err))
		}
	}
	c.layout.UpdateBlur(target)

	c.log.Debug("Switching page", zap.Uint64("generation", cm.gen), zap.String("target", target.ID), zap.Stringer("direction", dir))

	release := c.loop.Hold()
	ready := target.BeforeVisible(ctx)
	go func() {
		defer release()
		var err error
		select {
		case err = <-ready:
		case <-ctx.Done():
			err = ctx.Err()
		}
		c.loop.RequestFrame(func() { c.visual(cm, err) })
	}()
	return cm.t
}

// supersede abandons transition in flight. Pages it did not manage to
// deactivate are handed to the next transition.
func (c *Controller) supersede(cm *commit) {
	c.log.Debug("Transition superseded", zap.Uint64("generation", cm.gen), zap.String("target", cm.target.ID), zap.Int("step", cm.step))
	if cm.step < 2 {
		if cm.old != nil {
			c.leftover = append(c.leftover, cm.old)
		}
		c.leftover = append(c.leftover, cm.deactivate...)
	}
	c.inflight = nil
	cm.t.resolve(ErrSuperseded)
}

func (c *Controller) current(cm *commit) bool {
	return cm.gen == c.gen && c.inflight == cm
}

// visual is the first phase: target page becomes visible.
func (c *Controller) visual(cm *commit, ready error) {
	if !c.current(cm) {
		return
	}
	cm.step = 1
	if ready != nil {
		c.pageLog.Warn("Page content is not ready, showing it anyway", zap.String("target", cm.target.ID), zap.Error(ready))
	}

	ui := c.store.UIState()
	// every page stays active in vertical layout
	if ui != common.UIStateVertical {
		for _, p := range cm.deactivate {
			p.MarkActive(false)
		}
		if cm.old != nil {
			cm.old.MarkActive(false)
		}
	}
	if ui == common.UIStateDesktopPanels {
		c.graph.ApplyWindow(c.loop, cm.target)
	}
	if c.store.Paused() {
		cm.target.MarkActive(true)
	} else {
		cm.target.SetState(common.PageStatePlaying)
	}
	if c.opts.RepaintWorkaround && ui != common.UIStateDesktopFullbleed {
		if r, ok := c.surface.(Repainter); ok {
			r.Repaint()
		}
	}
	c.loop.RequestFrame(func() { c.bookkeeping(cm) })
}

// bookkeeping is the second phase: everything which is not needed to render
// the target page.
func (c *Controller) bookkeeping(cm *commit) {
	if !c.current(cm) {
		return
	}
	cm.step = 2

	vertical := c.store.UIState() == common.UIStateVertical
	for _, p := range cm.deactivate {
		p.SetState(common.PageStateNotActive)
		p.MarkActive(vertical)
	}
	if old := cm.old; old != nil {
		old.SetState(common.PageStateNotActive)
		old.MarkActive(vertical)
		old.SetVisited(old.Index < cm.target.Index)
		if old.IsAd() {
			c.store.SetAdvancementMode(common.AdvancementModeAdvanceToAds)
		}
	}

	index := cm.target.Index
	if cm.target.IsAd() {
		c.store.adShowing = true
		if c.store.pageIndex >= 0 {
			index = c.store.pageIndex
		}
	} else {
		c.store.adShowing = false
		if !cm.target.IsAutoAdvance() {
			c.store.progress = cm.target.ID
		}
	}
	c.store.pageID, c.store.pageIndex = cm.target.ID, index
	c.events.emit(common.EventKindPageChanged, cm.target.ID, index)

	if !c.navigated {
		c.navigated = true
		c.registerResources()
	}
	c.loop.RequestFrame(func() { c.deferred(cm) })
}

// deferred is the last phase: preload priorities and active signal.
func (c *Controller) deferred(cm *commit) {
	if !c.current(cm) {
		return
	}
	cm.step = 3

	c.updateDistances()
	c.events.emit(common.EventKindActive, cm.target.ID, -1)
	c.layout.UpdateBlur(cm.target)
	c.pageLog = c.log.With(zap.String("page", cm.target.ID))
	c.pageLog.Debug("Page is active", zap.Uint64("generation", cm.gen))

	c.inflight = nil
	if _, ok := c.state.(committing); ok {
		c.state = idle{}
	}
	cm.t.resolve(nil)
}

// registerResources runs once, on the first navigation.
func (c *Controller) registerResources() {
	if c.story.BackgroundAudio == "" {
		return
	}
	c.pool.Register(BackgroundAudioID, common.MediaKindAudio)
	c.log.Debug("Background audio registered", zap.String("src", c.story.BackgroundAudio))
}

func (c *Controller) updateDistances() {
	if c.active == nil {
		return
	}
	res, err := c.calc.Compute(c.active.ID, distance.Options{
		Branching:          c.opts.Branching,
		CrossDocumentSwipe: c.opts.CrossDocumentSwipe,
		Flat:               c.store.UIState() == common.UIStateVertical,
	})
	if err != nil {
		c.log.Error("Unable to compute distances", zap.Error(err))
		return
	}
	res.Apply()
	c.distances = res
	c.pool.Refresh()
}

// Next navigates forward from the active page. Auto is set when advance was
// not requested by the user.
func (c *Controller) Next(ctx context.Context, auto bool) *Transition {
	if c.active == nil {
		panic("navigation: next page requested without active page")
	}
	if auto {
		c.store.SetAdvancementMode(common.AdvancementModeAutoAdvanceTime)
	} else {
		c.store.SetAdvancementMode(common.AdvancementModeManualAdvance)
	}
	id, ok := c.graph.NextPageID(c.active.ID, auto)
	if !ok {
		c.deadEnd(common.EventKindNoNextPage, common.DirectionNext)
		return resolved("", nil)
	}
	return c.SwitchTo(ctx, id, common.DirectionNext)
}

// Previous navigates back from the active page.
func (c *Controller) Previous(ctx context.Context) *Transition {
	if c.active == nil {
		panic("navigation: previous page requested without active page")
	}
	id, ok := c.graph.PreviousPageID(c.active.ID)
	if !ok {
		c.deadEnd(common.EventKindNoPreviousPage, common.DirectionPrevious)
		return resolved("", nil)
	}
	return c.SwitchTo(ctx, id, common.DirectionPrevious)
}

func (c *Controller) deadEnd(kind common.EventKind, dir common.Direction) {
	c.events.emit(kind, c.active.ID, c.active.Index)
	if c.opts.CrossDocumentSwipe {
		c.events.dispatch(Event{Kind: common.EventKindSelectDocument, Index: -1, Direction: dir})
	}
}

// AddPage appends page (usually an ad) to the story, returns its final id.
func (c *Controller) AddPage(p *pages.Page) string {
	id := c.graph.Add(p)
	c.registerMedia(p)
	return id
}

// InsertPage places inserted page right after before page.
func (c *Controller) InsertPage(beforeID, insertedID string) bool {
	c.graph.SetAllowAds(c.store.CanInsertAutomaticAd())
	if !c.graph.InsertPage(beforeID, insertedID) {
		c.log.Debug("Page insertion refused", zap.String("before", beforeID), zap.String("inserted", insertedID))
		return false
	}
	c.log.Debug("Page inserted", zap.String("before", beforeID), zap.String("inserted", insertedID))
	return true
}

// SetPaused pauses or resumes the active page.
func (c *Controller) SetPaused(paused bool) {
	c.store.SetPaused(paused)
	if c.active == nil {
		return
	}
	if paused {
		c.active.SetState(common.PageStatePaused)
	} else {
		c.active.SetState(common.PageStatePlaying)
	}
}

// SetAttachmentOpen remembers whether attachment of the active page is open,
// so it could be reopened when story is loaded again.
func (c *Controller) SetAttachmentOpen(open bool) error {
	id := ""
	if open && c.active != nil {
		id = c.active.ID
	}
	return c.path.SetAttachmentPage(id)
}

// UpdateViewport derives layout from viewport signals and enters it.
func (c *Controller) UpdateViewport(sig layout.Signals) common.UIState {
	ui := layout.Derive(c.opts.Layout, sig)
	if !c.store.SetUIState(ui) {
		return c.store.UIState()
	}
	c.layout.Enter(ui, c.active)
	c.events.dispatch(Event{Kind: common.EventKindUiStateChanged, Index: -1, UIState: ui})
	if ui == common.UIStateVertical {
		c.updateDistances()
	}
	return ui
}

type nopSurface struct{}

func (nopSurface) SetClasses(bool, bool, bool) {}
func (nopSurface) AttachBlur()                 {}
func (nopSurface) DetachBlur()                 {}
func (nopSurface) UpdateBlur(*pages.Page)      {}
func (nopSurface) Verticalize([]string)        {}
