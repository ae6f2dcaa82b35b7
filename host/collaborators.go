package host

import (
	"sync"

	"go.uber.org/zap"

	"storynav/pages"
)

// Surface records what layout asked the host element to do. Front ends
// render from it.
type Surface struct {
	log *zap.Logger

	Desktop   bool
	Fullbleed bool
	OnePanel  bool
	// Blur is id of the page backdrop blur is drawn from, empty when
	// backdrop is not attached.
	Blur        string
	blurOn      bool
	Vertical    bool
	Attachments []string
	Repaints    int
}

func NewSurface(log *zap.Logger) *Surface {
	return &Surface{log: log.Named("surface")}
}

func (s *Surface) SetClasses(desktop, fullbleed, onePanel bool) {
	s.Desktop, s.Fullbleed, s.OnePanel = desktop, fullbleed, onePanel
}

func (s *Surface) AttachBlur() {
	s.blurOn = true
}

func (s *Surface) DetachBlur() {
	s.blurOn, s.Blur = false, ""
}

func (s *Surface) UpdateBlur(page *pages.Page) {
	if s.blurOn {
		s.Blur = page.ID
	}
}

func (s *Surface) Verticalize(attachments []string) {
	s.log.Debug("Story switched to vertical layout", zap.Strings("attachments", attachments))
	s.Vertical, s.Attachments = true, attachments
}

func (s *Surface) Repaint() {
	s.Repaints++
}

// Gate is reference access collaborator: authorizations complete when Apply
// is called.
type Gate struct {
	mu        sync.Mutex
	completed bool
	callbacks []func()
}

func (g *Gate) FirstAuthorizationsCompleted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.completed
}

func (g *Gate) OnApplyAuthorizations(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.callbacks = append(g.callbacks, fn)
}

// Apply completes authorizations and notifies subscribers.
func (g *Gate) Apply() {
	g.mu.Lock()
	g.completed = true
	callbacks := g.callbacks
	g.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Address is document address kept by the host.
type Address struct {
	fragment string
}

func NewAddress(fragment string) *Address {
	return &Address{fragment: fragment}
}

func (a *Address) Fragment() string {
	return a.fragment
}

func (a *Address) ReplaceFragment(fragment string) {
	a.fragment = fragment
}
