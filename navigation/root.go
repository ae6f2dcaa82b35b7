package navigation

import (
	"storynav/budget"
)

// ElementDistance returns distance of the page owning media element.
// Elements outside of pages (background audio) are never evicted.
func (c *Controller) ElementDistance(elementID string) int {
	p, ok := c.owners[elementID]
	if !ok {
		return budget.NeverEvict
	}
	if d, ok := p.Distance(); ok {
		return d
	}
	return budget.Unknown
}

// MaxMediaElementCounts leaves room for media of inserted ads.
func (c *Controller) MaxMediaElementCounts() budget.MediaCounts {
	return c.opts.Limits.MaxCounts(c.story.MediaCount())
}

func (c *Controller) Element() string {
	return c.story.ID
}
