package navigation

import (
	"storynav/common"
)

// Event is a signal for external chrome (progress bar, hints, analytics,
// host container).
type Event struct {
	// Frame is number of the frame event was emitted in.
	Frame uint64
	Kind  common.EventKind
	// PageID is empty for story level events.
	PageID string
	// Index is page index, -1 when event does not carry one.
	Index int
	// Direction is set for select-document events.
	Direction common.Direction
	// UIState is set for ui-state-changed events.
	UIState common.UIState
}

// Listener receives events on the frame loop goroutine.
type Listener func(Event)

type dispatcher struct {
	frame     func() uint64
	listeners []Listener
}

func (d *dispatcher) subscribe(l Listener) {
	d.listeners = append(d.listeners, l)
}

func (d *dispatcher) emit(kind common.EventKind, pageID string, index int) {
	d.dispatch(Event{Kind: kind, PageID: pageID, Index: index})
}

func (d *dispatcher) dispatch(ev Event) {
	ev.Frame = d.frame()
	for _, l := range d.listeners {
		l(ev)
	}
}
