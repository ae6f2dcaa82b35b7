// Package layout derives story layout (UI state) from viewport signals and
// applies its side effects to the host surface.
package layout

import (
	"go.uber.org/zap"

	"storynav/common"
	"storynav/pages"
)

// Options are layout thresholds and opt-ins.
type Options struct {
	MinWidth  int
	MinHeight int
	// AspectRatio is minimal width/height ratio for desktop in one panel
	// mode.
	AspectRatio       float64
	SupportsLandscape bool
	OnePanel          bool
}

// Signals describe viewport and the agent looking at the story.
type Signals struct {
	Width  int
	Height int
	// Bot is set for crawlers and automation.
	Bot bool
}

// Desktop reports whether viewport is large enough for desktop layouts.
func (o Options) Desktop(sig Signals) bool {
	if o.OnePanel {
		return sig.Height > 0 && float64(sig.Width)/float64(sig.Height) >= o.AspectRatio
	}
	return sig.Width >= o.MinWidth && sig.Height >= o.MinHeight
}

// Derive returns layout for the signals.
func Derive(opts Options, sig Signals) common.UIState {
	switch {
	case sig.Bot:
		return common.UIStateVertical
	case !opts.Desktop(sig):
		return common.UIStateMobile
	case opts.SupportsLandscape:
		return common.UIStateDesktopFullbleed
	case opts.OnePanel:
		return common.UIStateDesktopOnePanel
	}
	return common.UIStateDesktopPanels
}

// Surface is the host element story is rendered into.
type Surface interface {
	// SetClasses switches desktop presentation markers.
	SetClasses(desktop, fullbleed, onePanel bool)
	// AttachBlur creates backdrop blur, DetachBlur removes it.
	AttachBlur()
	DetachBlur()
	// UpdateBlur redraws backdrop from the page.
	UpdateBlur(page *pages.Page)
	// Verticalize forces natural height and inlines attachments of listed
	// pages. It could not be undone.
	Verticalize(attachments []string)
}

// Machine applies layout changes. It does not guard against leaving vertical
// layout, whoever keeps global UI state must.
type Machine struct {
	log     *zap.Logger
	graph   *pages.Graph
	surface Surface
	mm      pages.MeasureMutator

	state common.UIState
	blur  bool
}

func NewMachine(g *pages.Graph, surface Surface, mm pages.MeasureMutator, log *zap.Logger) *Machine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Machine{log: log.Named("layout"), graph: g, surface: surface, mm: mm}
}

func (m *Machine) State() common.UIState {
	return m.state
}

// Enter performs entry effects of the state.
func (m *Machine) Enter(state common.UIState, active *pages.Page) {
	m.log.Debug("Entering layout", zap.Stringer("state", state))
	m.state = state

	if m.blur {
		m.surface.DetachBlur()
		m.blur = false
	}

	m.surface.SetClasses(state.IsDesktop(), state == common.UIStateDesktopFullbleed, state == common.UIStateDesktopOnePanel)
	if state != common.UIStateDesktopPanels {
		m.graph.ClearWindow()
	}

	switch state {
	case common.UIStateDesktopPanels:
		m.graph.ApplyWindow(m.mm, active)
	case common.UIStateDesktopOnePanel:
		m.surface.AttachBlur()
		m.blur = true
		m.UpdateBlur(active)
	case common.UIStateVertical:
		var attachments []string
		for _, p := range m.graph.Pages() {
			if p.Attachment {
				attachments = append(attachments, p.ID)
			}
		}
		m.surface.Verticalize(attachments)
		for _, p := range m.graph.Pages() {
			p.MarkActive(true)
		}
	}
}

// UpdateBlur redraws backdrop for the new active page when backdrop is
// attached.
func (m *Machine) UpdateBlur(active *pages.Page) {
	if m.blur && active != nil {
		m.surface.UpdateBlur(active)
	}
}

// BlurAttached reports whether backdrop blur is on.
func (m *Machine) BlurAttached() bool {
	return m.blur
}
