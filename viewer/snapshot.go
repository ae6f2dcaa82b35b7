package viewer

import (
	"bytes"
	"slices"

	"storynav/host"
)

type pageRow struct {
	id       string
	active   bool
	visited  bool
	ad       bool
	gated    bool
	distance int
	known    bool
	state    string
}

// snapshot is copy of engine state taken on the goroutine which ran the
// command, view never reads engine directly.
type snapshot struct {
	story    string
	title    string
	layout   string
	state    string
	progress string
	paused   bool
	pending  string
	blur     string
	path     []string
	pages    []pageRow
	gated    []string
	media    []string
	output   []string
}

func takeSnapshot(e *host.Engine, out *bytes.Buffer) snapshot {
	ctl := e.Ctl
	s := snapshot{
		story:    e.Story.ID,
		title:    e.Story.Title,
		layout:   ctl.Store().UIState().String(),
		state:    ctl.State(),
		progress: ctl.Store().Progress(),
		paused:   ctl.Store().Paused(),
		blur:     e.Surface.Blur,
		path:     slices.Clone(ctl.Path()),
		media:    ctl.Pool().AllocatedIDs(),
		output:   lines(out),
	}
	if id, ok := ctl.Pending(); ok {
		s.pending = id
	}
	for _, p := range ctl.Graph().Pages() {
		row := pageRow{
			id:      p.ID,
			active:  p == ctl.Active(),
			visited: p.Visited(),
			ad:      p.Ad,
			gated:   p.AccessHidden || p.AccessProtected,
			state:   p.State().String(),
		}
		row.distance, row.known = p.Distance()
		if row.gated {
			s.gated = append(s.gated, p.ID)
		}
		s.pages = append(s.pages, row)
	}
	return s
}
