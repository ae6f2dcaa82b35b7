package navigation

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"storynav/budget"
	"storynav/common"
	"storynav/frame"
	"storynav/history"
	"storynav/layout"
	"storynav/pages"
)

func newStory(ids ...string) *pages.Story {
	g := pages.NewGraph(nil)
	for _, id := range ids {
		g.Add(&pages.Page{ID: id})
	}
	return &pages.Story{ID: "story", Graph: g}
}

// tb is common part of testing.T and rapid.T.
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

type harness struct {
	t      tb
	loop   *frame.Loop
	bag    *history.MemoryBag
	ctl    *Controller
	events []Event
}

func newHarness(t tb, story *pages.Story, surface layout.Surface, gate AccessGate, opts Options, log *zap.Logger) *harness {
	h := &harness{t: t, loop: frame.New(log), bag: history.NewMemoryBag()}
	h.ctl = New(story, h.loop, history.NewStack(h.bag, log), surface, gate, opts, log)
	h.ctl.Subscribe(func(ev Event) { h.events = append(h.events, ev) })
	return h
}

func (h *harness) settle() {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.loop.Settle(ctx); err != nil {
		h.t.Fatalf("frame loop did not settle: %v", err)
	}
}

func (h *harness) switchTo(id string, dir common.Direction) error {
	h.t.Helper()
	tr := h.ctl.SwitchTo(context.Background(), id, dir)
	h.settle()
	if !tr.Resolved() {
		h.t.Fatalf("transition to %q is not resolved after settle", id)
	}
	return tr.Err()
}

func (h *harness) next() {
	h.t.Helper()
	h.ctl.Next(context.Background(), false)
	h.settle()
}

func (h *harness) previous() {
	h.t.Helper()
	h.ctl.Previous(context.Background())
	h.settle()
}

func (h *harness) kinds() []common.EventKind {
	var res []common.EventKind
	for _, ev := range h.events {
		res = append(res, ev.Kind)
	}
	return res
}

func (h *harness) activeID() string {
	if p := h.ctl.Active(); p != nil {
		return p.ID
	}
	return ""
}

type pageContent struct {
	block  bool
	states []common.PageState
}

func (c *pageContent) BeforeVisible(context.Context) <-chan error {
	ch := make(chan error, 1)
	if !c.block {
		ch <- nil
	}
	return ch
}
func (c *pageContent) SetState(state common.PageState) { c.states = append(c.states, state) }
func (c *pageContent) SetDistance(int)                 {}

type fakeGate struct {
	completed bool
	callbacks []func()
}

func (g *fakeGate) FirstAuthorizationsCompleted() bool { return g.completed }
func (g *fakeGate) OnApplyAuthorizations(fn func())    { g.callbacks = append(g.callbacks, fn) }
func (g *fakeGate) apply() {
	for _, fn := range g.callbacks {
		fn()
	}
}

type address struct {
	fragment string
}

func (a *address) Fragment() string         { return a.fragment }
func (a *address) ReplaceFragment(f string) { a.fragment = f }

type repaintSurface struct {
	nopSurface
	repaints int
}

func (s *repaintSurface) Repaint() { s.repaints++ }

func TestController_SwitchToPhases(t *testing.T) {
	h := newHarness(t, newStory("a", "b", "c"), nil, nil, Options{}, zaptest.NewLogger(t))

	if err := h.switchTo("a", common.DirectionNext); err != nil {
		t.Fatalf("SwitchTo(a) error = %v", err)
	}
	if h.activeID() != "a" || h.ctl.Active().State() != common.PageStatePlaying {
		t.Fatalf("active = %q, state %v", h.activeID(), h.ctl.Active().State())
	}
	if !slices.Equal(h.kinds(), []common.EventKind{common.EventKindPageChanged, common.EventKindActive}) {
		t.Fatalf("events = %v", h.kinds())
	}
	changed, active := h.events[0], h.events[1]
	if changed.PageID != "a" || changed.Index != 0 || active.PageID != "a" {
		t.Errorf("events = %+v", h.events)
	}
	if active.Frame != changed.Frame+1 {
		t.Errorf("active emitted in frame %d, page-changed in %d, want consecutive frames", active.Frame, changed.Frame)
	}
	if d, ok := h.ctl.Distances().Distance("b"); !ok || d != 1 {
		t.Errorf("distance(b) = %d, %v", d, ok)
	}
	if d, _ := h.ctl.Graph().Page("c").Distance(); d != 2 {
		t.Errorf("page c distance = %d, want 2", d)
	}
	if h.ctl.State() != "idle" {
		t.Errorf("State() = %s", h.ctl.State())
	}

	if err := h.switchTo("c", common.DirectionNext); err != nil {
		t.Fatal(err)
	}
	a := h.ctl.Graph().Page("a")
	if a.State() != common.PageStateNotActive || a.Active() || !a.Visited() {
		t.Errorf("old page state %v, active %v, visited %v", a.State(), a.Active(), a.Visited())
	}
	// loop-back keeps the first page warm
	if d, _ := a.Distance(); d != 1 {
		t.Errorf("distance(a) on the last page = %d, want 1", d)
	}
}

func TestController_UnknownPage(t *testing.T) {
	h := newHarness(t, newStory("a"), nil, nil, Options{}, zaptest.NewLogger(t))
	if err := h.switchTo("zzz", common.DirectionNext); !errors.Is(err, pages.ErrUnknownPage) {
		t.Errorf("SwitchTo(zzz) error = %v", err)
	}
}

func TestController_SwitchToActiveIsNoop(t *testing.T) {
	h := newHarness(t, newStory("a", "b"), nil, nil, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.switchTo("b", common.DirectionNext)
	path := slices.Clone(h.ctl.Path())
	events := len(h.events)

	for _, dir := range []common.Direction{common.DirectionNext, common.DirectionPrevious} {
		tr := h.ctl.SwitchTo(context.Background(), "b", dir)
		if !tr.Resolved() || tr.Err() != nil {
			t.Errorf("SwitchTo(active, %v) not resolved immediately: %v", dir, tr.Err())
		}
		h.settle()
	}
	if !slices.Equal(h.ctl.Path(), path) || len(h.events) != events {
		t.Errorf("path %v (was %v), %d new events", h.ctl.Path(), path, len(h.events)-events)
	}
}

func TestController_NextPreviousRestoresPath(t *testing.T) {
	h := newHarness(t, newStory("a", "b", "c"), nil, nil, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	before := slices.Clone(h.ctl.Path())

	if err := h.switchTo("b", common.DirectionNext); err != nil {
		t.Fatal(err)
	}
	if err := h.switchTo("a", common.DirectionPrevious); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(h.ctl.Path(), before) {
		t.Errorf("path = %v, want %v", h.ctl.Path(), before)
	}
	saved, _, err := history.Get[[]string](h.bag, history.NavigationPathKey)
	if err != nil || !slices.Equal(saved, before) {
		t.Errorf("persisted path = %v, %v", saved, err)
	}
	if b := h.ctl.Graph().Page("b"); b.Visited() || b.State() != common.PageStateNotActive {
		t.Errorf("page b visited %v, state %v", b.Visited(), b.State())
	}
}

func TestController_Supersede(t *testing.T) {
	h := newHarness(t, newStory("a", "b", "c"), nil, nil, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.events = nil

	first := h.ctl.SwitchTo(context.Background(), "b", common.DirectionNext)
	second := h.ctl.SwitchTo(context.Background(), "c", common.DirectionNext)
	if !errors.Is(first.Err(), ErrSuperseded) {
		t.Errorf("first transition error = %v, want ErrSuperseded", first.Err())
	}
	h.settle()
	if err := second.Err(); err != nil || !second.Resolved() {
		t.Fatalf("second transition = %v, resolved %v", err, second.Resolved())
	}

	if h.activeID() != "c" {
		t.Errorf("active = %q", h.activeID())
	}
	for _, id := range []string{"a", "b"} {
		if p := h.ctl.Graph().Page(id); p.Active() || p.State() != common.PageStateNotActive {
			t.Errorf("page %s active %v, state %v", id, p.Active(), p.State())
		}
	}
	if !slices.Equal(h.kinds(), []common.EventKind{common.EventKindPageChanged, common.EventKindActive}) || h.events[0].PageID != "c" {
		t.Errorf("events = %+v", h.events)
	}
	if !slices.Equal(h.ctl.Path(), []string{"a", "b", "c"}) {
		t.Errorf("path = %v", h.ctl.Path())
	}
}

func TestController_SupersedeWhileContentLoads(t *testing.T) {
	story := newStory("a", "b", "c")
	slow := &pageContent{block: true}
	story.Graph.Page("b").Content = slow
	h := newHarness(t, story, nil, nil, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)

	ctx, cancel := context.WithCancel(context.Background())
	first := h.ctl.SwitchTo(ctx, "b", common.DirectionNext)
	second := h.ctl.SwitchTo(context.Background(), "c", common.DirectionNext)
	cancel()
	h.settle()

	if !errors.Is(first.Err(), ErrSuperseded) || second.Err() != nil {
		t.Errorf("transitions = %v, %v", first.Err(), second.Err())
	}
	if len(slow.states) != 1 || slow.states[0] != common.PageStateNotActive {
		t.Errorf("stale target states = %v", slow.states)
	}
}

func TestController_DeadEnds(t *testing.T) {
	h := newHarness(t, newStory("a", "b"), nil, nil, Options{CrossDocumentSwipe: true}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.events = nil

	h.previous()
	h.next()
	h.next()
	want := []common.EventKind{
		common.EventKindNoPreviousPage, common.EventKindSelectDocument,
		common.EventKindPageChanged, common.EventKindActive,
		common.EventKindNoNextPage, common.EventKindSelectDocument,
	}
	if !slices.Equal(h.kinds(), want) {
		t.Fatalf("events = %v", h.kinds())
	}
	if h.events[1].Direction != common.DirectionPrevious || h.events[5].Direction != common.DirectionNext {
		t.Errorf("select-document directions = %v, %v", h.events[1].Direction, h.events[5].Direction)
	}
	if h.events[4].PageID != "b" {
		t.Errorf("no-next-page for %q", h.events[4].PageID)
	}
}

func TestController_NavigationWithoutActivePanics(t *testing.T) {
	h := newHarness(t, newStory("a"), nil, nil, Options{}, zaptest.NewLogger(t))
	for name, fn := range map[string]func(){
		"next":     func() { h.ctl.Next(context.Background(), false) },
		"previous": func() { h.ctl.Previous(context.Background()) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestController_HiddenPageWaitsForAccess(t *testing.T) {
	story := newStory("a", "b", "c")
	story.Graph.Page("b").AccessHidden = true
	gate := &fakeGate{completed: true}
	h := newHarness(t, story, nil, gate, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.events = nil

	h.next()
	if h.activeID() != "a" {
		t.Fatalf("active = %q, hidden page must not become active", h.activeID())
	}
	if target, ok := h.ctl.Pending(); !ok || target != "b" {
		t.Fatalf("Pending() = %q, %v", target, ok)
	}
	if !h.ctl.Store().AccessOpen() || !slices.Equal(h.kinds(), []common.EventKind{common.EventKindAccessRequested}) {
		t.Fatalf("access open %v, events %v", h.ctl.Store().AccessOpen(), h.kinds())
	}

	story.Graph.Page("b").AccessHidden = false
	gate.apply()
	h.settle()
	if h.activeID() != "b" || h.ctl.Store().AccessOpen() {
		t.Errorf("after authorizations active = %q, access open %v", h.activeID(), h.ctl.Store().AccessOpen())
	}
	if _, ok := h.ctl.Pending(); ok {
		t.Error("pending target not cleared")
	}
	if !slices.Equal(h.ctl.Path(), []string{"a", "b"}) {
		t.Errorf("path = %v", h.ctl.Path())
	}
}

func TestController_StillHiddenAfterAccess(t *testing.T) {
	story := newStory("a", "b")
	story.Graph.Page("b").AccessHidden = true
	gate := &fakeGate{completed: true}
	h := newHarness(t, story, nil, gate, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.next()

	gate.apply()
	h.settle()
	if h.activeID() != "a" {
		t.Errorf("active = %q", h.activeID())
	}
	if _, ok := h.ctl.Pending(); ok || h.ctl.State() != "idle" {
		t.Errorf("state = %s", h.ctl.State())
	}
}

func TestController_ProtectedPageWaitsForFirstAuthorizations(t *testing.T) {
	story := newStory("a", "b")
	story.Graph.Page("b").AccessProtected = true
	gate := &fakeGate{}
	h := newHarness(t, story, nil, gate, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.events = nil

	h.next()
	if h.activeID() != "a" || len(h.events) != 0 || h.ctl.State() != "pending-access(b)" {
		t.Fatalf("active %q, events %v, state %s", h.activeID(), h.kinds(), h.ctl.State())
	}
	gate.apply()
	h.settle()
	if h.activeID() != "b" {
		t.Errorf("active = %q", h.activeID())
	}

	// authorizations are done, protected pages are reachable directly now
	if err := h.switchTo("a", common.DirectionPrevious); err != nil || h.activeID() != "a" {
		t.Fatal(err)
	}
	if err := h.switchTo("b", common.DirectionNext); err != nil || h.activeID() != "b" {
		t.Errorf("active = %q, %v", h.activeID(), err)
	}
}

func TestController_InsertPage(t *testing.T) {
	t.Run("ads disallowed", func(t *testing.T) {
		h := newHarness(t, newStory("a", "b"), nil, nil, Options{}, zaptest.NewLogger(t))
		h.ctl.AddPage(&pages.Page{ID: "ad1", Ad: true})
		if h.ctl.InsertPage("a", "ad1") {
			t.Fatal("InsertPage() succeeded with ad insertion disabled")
		}
		g := h.ctl.Graph()
		if next, _ := g.NextPageID("a", false); next != "b" {
			t.Errorf("next of a = %q", next)
		}
		if _, ok := g.Linked("a", pages.AdvanceTo); ok {
			t.Error("refused insertion mutated the graph")
		}
	})

	t.Run("ad between pages", func(t *testing.T) {
		h := newHarness(t, newStory("a", "b", "c"), nil, nil, Options{CanInsertAutomaticAd: true}, zaptest.NewLogger(t))
		h.switchTo("a", common.DirectionNext)
		h.ctl.AddPage(&pages.Page{ID: "ad1", Ad: true})
		if !h.ctl.InsertPage("a", "ad1") {
			t.Fatal("InsertPage() refused")
		}
		h.events = nil

		h.next()
		store := h.ctl.Store()
		if h.activeID() != "ad1" || !store.AdShowing() {
			t.Fatalf("active = %q, ad showing %v", h.activeID(), store.AdShowing())
		}
		if !slices.Equal(h.ctl.Path(), []string{"a"}) {
			t.Errorf("ad recorded in path: %v", h.ctl.Path())
		}
		if h.events[0].PageID != "ad1" || h.events[0].Index != 0 {
			t.Errorf("page-changed for ad = %+v, want index of the previous page", h.events[0])
		}

		h.next()
		if h.activeID() != "b" || store.AdShowing() {
			t.Fatalf("active = %q, ad showing %v", h.activeID(), store.AdShowing())
		}
		if store.AdvancementMode() != common.AdvancementModeAdvanceToAds {
			t.Errorf("advancement mode = %v", store.AdvancementMode())
		}
		if id, index := store.CurrentPage(); id != "b" || index != 1 {
			t.Errorf("CurrentPage() = %q, %d", id, index)
		}
		if !slices.Equal(h.ctl.Path(), []string{"a", "b"}) {
			t.Errorf("path = %v", h.ctl.Path())
		}
	})
}

func TestController_Progress(t *testing.T) {
	story := newStory("a", "b")
	story.Graph.Page("b").AutoAdvance = true
	h := newHarness(t, story, nil, nil, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.ctl.Next(context.Background(), true)
	h.settle()
	if h.ctl.Store().Progress() != "a" {
		t.Errorf("progress updated for auto advance page: %q", h.ctl.Store().Progress())
	}
	if h.ctl.Store().AdvancementMode() != common.AdvancementModeAutoAdvanceTime {
		t.Errorf("advancement mode = %v", h.ctl.Store().AdvancementMode())
	}
}

func TestController_Paused(t *testing.T) {
	story := newStory("a", "b")
	content := &pageContent{}
	story.Graph.Page("b").Content = content
	h := newHarness(t, story, nil, nil, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)

	h.ctl.SetPaused(true)
	if h.ctl.Active().State() != common.PageStatePaused {
		t.Errorf("active state = %v", h.ctl.Active().State())
	}
	h.next()
	b := h.ctl.Active()
	if !b.Active() || b.State() == common.PageStatePlaying || len(content.states) != 0 {
		t.Errorf("paused story started playback: active %v, states %v", b.Active(), content.states)
	}
	h.ctl.SetPaused(false)
	if !slices.Equal(content.states, []common.PageState{common.PageStatePlaying}) {
		t.Errorf("states = %v", content.states)
	}
}

func TestController_RepaintWorkaround(t *testing.T) {
	surface := &repaintSurface{}
	h := newHarness(t, newStory("a", "b"), surface, nil, Options{RepaintWorkaround: true}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.next()
	if surface.repaints != 2 {
		t.Errorf("repaints = %d, want 2", surface.repaints)
	}
}

func TestController_UpdateViewport(t *testing.T) {
	opts := Options{Layout: layout.Options{MinWidth: 1024, MinHeight: 550, AspectRatio: 0.775}}
	h := newHarness(t, newStory("a", "b", "c", "d"), nil, nil, opts, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.switchTo("b", common.DirectionNext)
	h.events = nil

	if ui := h.ctl.UpdateViewport(layout.Signals{Width: 1920, Height: 1080}); ui != common.UIStateDesktopPanels {
		t.Fatalf("UpdateViewport() = %v", ui)
	}
	h.settle()
	if off, ok := h.ctl.Graph().Page("d").DesktopPosition(); !ok || off != 2 {
		t.Errorf("position of d = %d, %v", off, ok)
	}
	h.next()
	if off, _ := h.ctl.Graph().Page("d").DesktopPosition(); off != 1 {
		t.Errorf("position of d after navigation = %d", off)
	}

	if ui := h.ctl.UpdateViewport(layout.Signals{Width: 1920, Height: 1080, Bot: true}); ui != common.UIStateVertical {
		t.Fatalf("UpdateViewport(bot) = %v", ui)
	}
	for _, p := range h.ctl.Graph().Pages() {
		if d, _ := p.Distance(); d != 0 || !p.Active() {
			t.Errorf("vertical layout page %s distance %d, active %v", p.ID, d, p.Active())
		}
	}
	if ui := h.ctl.UpdateViewport(layout.Signals{Width: 360, Height: 640}); ui != common.UIStateVertical {
		t.Errorf("left vertical layout for %v", ui)
	}

	var states []common.UIState
	for _, ev := range h.events {
		if ev.Kind == common.EventKindUiStateChanged {
			states = append(states, ev.UIState)
		}
	}
	if !slices.Equal(states, []common.UIState{common.UIStateDesktopPanels, common.UIStateVertical}) {
		t.Errorf("ui state events = %v", states)
	}
}

func TestController_ViewportChangesInOneFrame(t *testing.T) {
	opts := Options{Layout: layout.Options{MinWidth: 1024, MinHeight: 550, AspectRatio: 0.775}}
	h := newHarness(t, newStory("a", "b", "c", "d"), nil, nil, opts, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.switchTo("b", common.DirectionNext)

	h.ctl.UpdateViewport(layout.Signals{Width: 1200, Height: 800})
	h.ctl.UpdateViewport(layout.Signals{Width: 400, Height: 800})
	h.settle()

	if ui := h.ctl.Store().UIState(); ui != common.UIStateMobile {
		t.Errorf("UIState() = %v, want mobile", ui)
	}
	for _, p := range h.ctl.Graph().Pages() {
		if off, ok := p.DesktopPosition(); ok {
			t.Errorf("page %s has desktop position %d in mobile layout", p.ID, off)
		}
	}
}

func TestController_VerticalKeepsPagesActive(t *testing.T) {
	h := newHarness(t, newStory("a", "b", "c"), nil, nil, Options{}, zaptest.NewLogger(t))
	h.switchTo("a", common.DirectionNext)
	h.ctl.UpdateViewport(layout.Signals{Width: 1920, Height: 1080, Bot: true})

	h.next()
	if h.activeID() != "b" {
		t.Fatalf("active = %q, want b", h.activeID())
	}
	for _, p := range h.ctl.Graph().Pages() {
		if !p.Active() {
			t.Errorf("page %s is not active in vertical layout", p.ID)
		}
	}
	if st := h.ctl.Graph().Page("a").State(); st != common.PageStateNotActive {
		t.Errorf("state of a = %v, want not-active", st)
	}
}

func TestController_ResourceBudget(t *testing.T) {
	story := newStory("a", "b", "c", "d")
	story.BackgroundAudio = "theme.mp3"
	for i, p := range story.Graph.Pages() {
		p.Media = []pages.Media{{ID: p.ID + "-video", Kind: common.MediaKindVideo}}
		if i == 3 {
			p.Media = append(p.Media, pages.Media{ID: "d-audio", Kind: common.MediaKindAudio})
		}
	}
	opts := Options{Limits: budget.Limits{MaxAudio: 4, MaxVideo: 8, Reserve: 2}}
	h := newHarness(t, story, nil, nil, opts, zaptest.NewLogger(t))

	if d := h.ctl.ElementDistance("b-video"); d != budget.Unknown {
		t.Errorf("distance before navigation = %d", d)
	}
	if d := h.ctl.ElementDistance("whatever"); d != -1 {
		t.Errorf("distance of foreign element = %d", d)
	}
	if mc := h.ctl.MaxMediaElementCounts(); mc.Audio != 4 || mc.Video != 6 {
		t.Errorf("MaxMediaElementCounts() = %+v", mc)
	}
	if h.ctl.Element() != "story" {
		t.Errorf("Element() = %q", h.ctl.Element())
	}

	h.switchTo("a", common.DirectionNext)
	if d := h.ctl.ElementDistance("c-video"); d != 2 {
		t.Errorf("distance(c-video) = %d", d)
	}
	pool := h.ctl.Pool()
	for _, id := range []string{"a-video", "b-video", "c-video", "d-video", "d-audio", BackgroundAudioID} {
		if !pool.Allocated(id) {
			t.Errorf("%s is not allocated", id)
		}
	}
}

func TestController_Start(t *testing.T) {
	t.Run("fragment", func(t *testing.T) {
		h := newHarness(t, newStory("a", "b", "c"), nil, nil, Options{}, zaptest.NewLogger(t))
		if err := history.Put(h.bag, history.AttachmentPageKey, "b"); err != nil {
			t.Fatal(err)
		}
		addr := &address{fragment: "#page=b&ref=x"}
		loaded := h.ctl.Start(context.Background(), addr)
		h.settle()

		if err := loaded.Err(); err != nil || !loaded.Resolved() {
			t.Fatalf("Start() = %v, resolved %v", err, loaded.Resolved())
		}
		if h.activeID() != "b" || addr.fragment != "ref=x" {
			t.Errorf("active = %q, fragment %q", h.activeID(), addr.fragment)
		}
		want := []common.EventKind{
			common.EventKindPageChanged, common.EventKindActive,
			common.EventKindAttachmentReopen, common.EventKindStoryLoaded,
		}
		if !slices.Equal(h.kinds(), want) {
			t.Errorf("events = %v", h.kinds())
		}
	})

	t.Run("restored path with branching", func(t *testing.T) {
		h := newHarness(t, newStory("a", "b", "c"), nil, nil, Options{Branching: true}, zaptest.NewLogger(t))
		if err := history.Put(h.bag, history.NavigationPathKey, []string{"a", "c"}); err != nil {
			t.Fatal(err)
		}
		h.ctl.Start(context.Background(), &address{})
		h.settle()
		if h.activeID() != "c" || !slices.Equal(h.ctl.Path(), []string{"a", "c"}) {
			t.Errorf("active = %q, path %v", h.activeID(), h.ctl.Path())
		}
		if d, _ := h.ctl.Distances().Distance("a"); d != 1 {
			t.Errorf("distance(a) = %d", d)
		}
	})

	t.Run("unknown fragment page", func(t *testing.T) {
		h := newHarness(t, newStory("a", "b"), nil, nil, Options{}, zaptest.NewLogger(t))
		h.ctl.Start(context.Background(), &address{fragment: "page=zzz"})
		h.settle()
		if h.activeID() != "a" {
			t.Errorf("active = %q", h.activeID())
		}
	})

	t.Run("content timeout", func(t *testing.T) {
		story := newStory("a", "b")
		story.Graph.Page("b").Content = &pageContent{block: true}
		h := newHarness(t, story, nil, nil, Options{InitialContentTimeout: 20 * time.Millisecond}, zaptest.NewLogger(t))
		loaded := h.ctl.Start(context.Background(), nil)
		h.settle()
		if loaded.Err() != nil || h.kinds()[len(h.events)-1] != common.EventKindStoryLoaded {
			t.Errorf("Start() = %v, events %v", loaded.Err(), h.kinds())
		}
	})

	t.Run("empty story", func(t *testing.T) {
		h := newHarness(t, newStory(), nil, nil, Options{}, zaptest.NewLogger(t))
		if err := h.ctl.Start(context.Background(), nil).Err(); !errors.Is(err, ErrEmptyStory) {
			t.Errorf("Start() = %v", err)
		}
	})
}

// On a linear story navigation path is always the reading order prefix ending
// with the active page, and active page is at distance 0.
func TestController_LinearNavigationProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "pages")
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		h := newHarness(rt, newStory(ids...), nil, nil, Options{}, zap.NewNop())
		h.switchTo(ids[0], common.DirectionNext)

		steps := rapid.SliceOfN(rapid.Bool(), 1, 20).Draw(rt, "forward")
		for _, forward := range steps {
			if forward {
				h.next()
			} else {
				h.previous()
			}
			active := h.ctl.Active()
			if !slices.Equal(h.ctl.Path(), ids[:active.Index+1]) {
				rt.Fatalf("path %v with active %s", h.ctl.Path(), active.ID)
			}
			if d, ok := h.ctl.Distances().Distance(active.ID); !ok || d != 0 {
				rt.Fatalf("distance(active) = %d, %v", d, ok)
			}
		}
	})
}
