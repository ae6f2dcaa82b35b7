// Package common keeps enums shared by the engine packages, configuration and
// the command line front end. Enum methods are generated by go-enum.
package common

// Direction of a page transition.
// ENUM(next, previous)
type Direction int

// Playback state of a single page.
// ENUM(not-active, playing, paused)
type PageState int

// Layout mode of the story.
// ENUM(mobile, desktop-panels, desktop-one-panel, desktop-fullbleed, vertical)
type UIState int

// IsDesktop reports layouts that place the story into a desktop frame.
func (u UIState) IsDesktop() bool {
	return u == UIStateDesktopPanels || u == UIStateDesktopOnePanel || u == UIStateDesktopFullbleed
}

// How the story advances between pages.
// ENUM(manual-advance, auto-advance-time, advance-to-ads)
type AdvancementMode int

// Kind of heavy media resource managed by resource budget.
// ENUM(audio, video)
type MediaKind int

// Backend used to persist history state.
// ENUM(memory, sqlite)
type HistoryStore int

// Signals emitted by navigation engine.
// ENUM(page-changed, active, no-next-page, no-previous-page, access-requested, select-document, attachment-reopen, ui-state-changed, story-loaded)
type EventKind int
