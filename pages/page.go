// Package pages keeps story pages and the navigation graph between them.
package pages

import (
	"context"

	"storynav/common"
)

// DefaultPageID is given to pages which come without identity.
const DefaultPageID = "default-page"

// Media is a heavy resource (audio or video element) embedded into a page.
type Media struct {
	ID   string
	Kind common.MediaKind
	Src  string
}

// Content is the host side of a page: whatever renders its layers and media.
// Engine only tells it when to get ready, what to do and how far it is from
// the active page.
type Content interface {
	// BeforeVisible resolves when page is ready to become visible.
	BeforeVisible(ctx context.Context) <-chan error
	SetState(state common.PageState)
	SetDistance(distance int)
}

// Page is one screen of the story. Page is owned by the host document, the
// engine reads and writes only navigation relevant fields.
type Page struct {
	ID    string
	Index int

	Ad              bool
	AutoAdvance     bool
	AccessProtected bool
	AccessHidden    bool
	Attachment      bool
	Media           []Media

	Content Content

	state       common.PageState
	distance    int
	hasDistance bool
	active      bool
	visited     bool
	position    int
	positioned  bool
}

func (p *Page) IsAd() bool {
	return p.Ad
}

func (p *Page) IsAutoAdvance() bool {
	return p.AutoAdvance
}

func (p *Page) State() common.PageState {
	return p.state
}

// SetState changes playback state. Playing page always becomes active
// (visible), page which is not active anymore loses its active marker.
func (p *Page) SetState(state common.PageState) {
	p.state = state
	switch state {
	case common.PageStatePlaying:
		p.active = true
	case common.PageStateNotActive:
		p.active = false
	}
	if p.Content != nil {
		p.Content.SetState(state)
	}
}

// Distance returns last distance hint assigned by the engine.
func (p *Page) Distance() (int, bool) {
	return p.distance, p.hasDistance
}

// SetDistance records distance from the active page and forwards it to page
// content which owns resource allocation.
func (p *Page) SetDistance(distance int) {
	if p.hasDistance && p.distance == distance {
		return
	}
	p.distance, p.hasDistance = distance, true
	if p.Content != nil {
		p.Content.SetDistance(distance)
	}
}

// BeforeVisible asks page content to get ready. Pages without content are
// always ready.
func (p *Page) BeforeVisible(ctx context.Context) <-chan error {
	if p.Content != nil {
		return p.Content.BeforeVisible(ctx)
	}
	ch := make(chan error, 1)
	ch <- nil
	close(ch)
	return ch
}

func (p *Page) Active() bool {
	return p.active
}

// MarkActive sets or clears visibility marker without touching playback.
func (p *Page) MarkActive(active bool) {
	p.active = active
}

// Visited tells desktop ribbon on which side of the active page to place this
// one.
func (p *Page) Visited() bool {
	return p.visited
}

func (p *Page) SetVisited(visited bool) {
	p.visited = visited
}

// DesktopPosition returns offset from the active page in desktop panels layout.
func (p *Page) DesktopPosition() (int, bool) {
	return p.position, p.positioned
}

func (p *Page) setDesktopPosition(offset int) {
	p.position, p.positioned = offset, true
}

func (p *Page) clearDesktopPosition() {
	p.position, p.positioned = 0, false
}
