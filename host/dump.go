package host

import (
	"fmt"
	"strings"

	"storynav/distance"
	"storynav/pages"
	"storynav/utils/debug"
)

// Dump returns readable tree of the story graph. Distances are included when
// result is not nil.
func Dump(story *pages.Story, res *distance.Result) string {
	tw := debug.NewTreeWriter()
	g := story.Graph

	tw.Line(0, "Story")
	tw.Field(1, "id", story.ID)
	tw.Field(1, "title", story.Title)
	tw.Field(1, "lang", story.Lang)
	tw.Field(1, "background-audio", story.BackgroundAudio)

	tw.Line(1, "Pages (%d)", g.Len())
	for _, p := range g.Pages() {
		tw.Line(2, "[%d] %s%s", p.Index, p.ID, flags(p))
		for _, kind := range []pages.LinkKind{pages.AdvanceTo, pages.AutoAdvanceTo, pages.ReturnTo} {
			if to, ok := g.Linked(p.ID, kind); ok {
				tw.Field(3, kind.String(), to)
			}
		}
		if branches := g.Branches(p.ID); len(branches) > 0 {
			tw.List(3, "branches", branches)
		}
		if next, ok := g.NextPageID(p.ID, false); ok {
			tw.Field(3, "next", next)
		}
		if prev, ok := g.PreviousPageID(p.ID); ok {
			tw.Field(3, "previous", prev)
		}
		if len(p.Media) > 0 {
			media := make([]string, 0, len(p.Media))
			for _, m := range p.Media {
				media = append(media, fmt.Sprintf("%s %s %s", m.ID, m.Kind, m.Src))
			}
			tw.List(3, "media", media)
		}
	}

	if res != nil {
		tw.Line(1, "Distances")
		for d, ids := range res.ByDistance() {
			if len(ids) > 0 {
				tw.Line(2, "%d: %s", d, strings.Join(ids, " "))
			}
		}
	}
	if orphans := g.Unreachable(); len(orphans) > 0 {
		tw.List(1, "Unreachable", orphans)
	}
	return tw.String()
}

func flags(p *pages.Page) string {
	var fl []string
	if p.Ad {
		fl = append(fl, "ad")
	}
	if p.AutoAdvance {
		fl = append(fl, "auto-advance")
	}
	if p.AccessProtected {
		fl = append(fl, "access")
	}
	if p.AccessHidden {
		fl = append(fl, "access-hide")
	}
	if p.Attachment {
		fl = append(fl, "attachment")
	}
	if len(fl) == 0 {
		return ""
	}
	return " (" + strings.Join(fl, ", ") + ")"
}
