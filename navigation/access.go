package navigation

import (
	"go.uber.org/zap"

	"storynav/common"
)

// AccessGate decides whether restricted pages could be shown. Callbacks
// registered with OnApplyAuthorizations could be invoked from any goroutine.
type AccessGate interface {
	FirstAuthorizationsCompleted() bool
	OnApplyAuthorizations(fn func())
}

// applyAuthorizations resumes navigation which was waiting for access.
func (c *Controller) applyAuthorizations() {
	c.authorized = true
	c.store.SetAccessOpen(false)

	pending, ok := c.state.(pendingAccess)
	if !ok {
		return
	}
	c.settle()

	target := c.graph.Page(pending.target)
	if target == nil || target.AccessHidden {
		c.log.Debug("Page is still hidden after authorizations, dropping navigation", zap.String("target", pending.target))
		return
	}
	c.log.Debug("Authorizations applied, resuming navigation", zap.String("target", pending.target))
	c.SwitchTo(c.ctx, pending.target, common.DirectionNext)
}
