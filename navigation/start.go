package navigation

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storynav/common"
)

// PageParam is fragment parameter which selects initial page.
const PageParam = "page"

// Address is the document address, only its fragment is used.
type Address interface {
	Fragment() string
	ReplaceFragment(fragment string)
}

// Start restores navigation path, navigates to the initial page and reports
// story loaded once initial content is ready or timeout expired. Returned
// transition resolves after story-loaded event. Context is kept for
// navigation resumed by access authorizations.
func (c *Controller) Start(ctx context.Context, addr Address) *Transition {
	c.ctx = ctx
	if c.graph.Len() == 0 {
		return resolved("", ErrEmptyStory)
	}
	if err := c.path.Restore(); err != nil {
		c.log.Warn("Unable to restore navigation path, starting over", zap.Error(err))
	}

	initial := c.initialPage(addr)
	c.log.Debug("Starting story", zap.String("story", c.story.ID), zap.String("initial", initial), zap.Strings("path", c.path.Path()))

	first := c.SwitchTo(ctx, initial, common.DirectionNext)
	stripPageParam(addr)

	// content readiness is requested on the loop goroutine, waited for off it
	var wait []<-chan error
	for _, id := range append([]string{initial}, c.graph.AdjacentPageIDs(initial)...) {
		if p := c.graph.Page(id); p != nil {
			wait = append(wait, p.BeforeVisible(ctx))
		}
	}

	loaded := newTransition(initial)
	release := c.loop.Hold()
	go func() {
		defer release()
		if err := first.Wait(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			loaded.resolve(err)
			return
		}
		c.loop.Post(c.reopenAttachment)

		if err := waitContent(ctx, c.opts.InitialContentTimeout, wait); err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				c.log.Warn("Initial content is not ready in time, proceeding", zap.Duration("timeout", c.opts.InitialContentTimeout))
			} else {
				c.log.Warn("Initial content failed", zap.Error(err))
			}
		}
		c.loop.Post(func() {
			c.events.emit(common.EventKindStoryLoaded, "", -1)
			loaded.resolve(nil)
		})
	}()
	return loaded
}

func (c *Controller) initialPage(addr Address) string {
	if id := pageParam(addr); id != "" && c.graph.Page(id) != nil {
		return id
	}
	if c.opts.Branching {
		if top, ok := c.path.Top(); ok && c.graph.Page(top) != nil {
			return top
		}
	}
	return c.graph.First().ID
}

func (c *Controller) reopenAttachment() {
	id, err := c.path.AttachmentPage()
	if err != nil {
		c.log.Warn("Unable to read attachment state", zap.Error(err))
		return
	}
	if id != "" && c.active != nil && c.active.ID == id {
		c.events.emit(common.EventKindAttachmentReopen, id, c.active.Index)
	}
}

func fragmentValues(addr Address) url.Values {
	if addr == nil {
		return nil
	}
	values, err := url.ParseQuery(strings.TrimPrefix(addr.Fragment(), "#"))
	if err != nil {
		return nil
	}
	return values
}

func pageParam(addr Address) string {
	return fragmentValues(addr).Get(PageParam)
}

// stripPageParam removes page parameter so later address changes do not
// navigate again.
func stripPageParam(addr Address) {
	values := fragmentValues(addr)
	if !values.Has(PageParam) {
		return
	}
	values.Del(PageParam)
	addr.ReplaceFragment(values.Encode())
}

func waitContent(ctx context.Context, timeout time.Duration, ready []<-chan error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, ch := range ready {
		g.Go(func() error {
			select {
			case err := <-ch:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}
