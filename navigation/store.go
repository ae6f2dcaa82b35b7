package navigation

import (
	"storynav/common"
)

// Store keeps story wide UI state shared with chrome.
type Store struct {
	uiState    common.UIState
	uiStateSet bool
	paused     bool
	accessOpen bool
	adShowing  bool
	mode       common.AdvancementMode
	pageID     string
	pageIndex  int
	progress   string
	insertAds  bool
}

func NewStore(canInsertAutomaticAd bool) *Store {
	return &Store{insertAds: canInsertAutomaticAd, pageIndex: -1}
}

func (s *Store) UIState() common.UIState {
	return s.uiState
}

// SetUIState changes layout. Vertical layout rewrites story structure, so
// once it is entered nothing else is accepted. Returns false when state was
// not changed.
func (s *Store) SetUIState(state common.UIState) bool {
	if s.uiStateSet && (s.uiState == state || s.uiState == common.UIStateVertical) {
		return false
	}
	s.uiState, s.uiStateSet = state, true
	return true
}

func (s *Store) Paused() bool {
	return s.paused
}

func (s *Store) SetPaused(paused bool) {
	s.paused = paused
}

// AccessOpen reports whether access (paywall) UI is requested.
func (s *Store) AccessOpen() bool {
	return s.accessOpen
}

func (s *Store) SetAccessOpen(open bool) {
	s.accessOpen = open
}

func (s *Store) AdShowing() bool {
	return s.adShowing
}

func (s *Store) AdvancementMode() common.AdvancementMode {
	return s.mode
}

func (s *Store) SetAdvancementMode(mode common.AdvancementMode) {
	s.mode = mode
}

// CurrentPage returns id and index of the page reported to chrome. Index
// stays on the last story page while an ad is showing.
func (s *Store) CurrentPage() (string, int) {
	return s.pageID, s.pageIndex
}

// Progress returns page progress bar was last updated for.
func (s *Store) Progress() string {
	return s.progress
}

func (s *Store) CanInsertAutomaticAd() bool {
	return s.insertAds
}

func (s *Store) SetCanInsertAutomaticAd(on bool) {
	s.insertAds = on
}
