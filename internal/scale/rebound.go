package scale

import "github.com/sirupsen/logrus"

// reboundTarget computes where a tracking axis should settle: an edge that
// showed the data edge last pass follows it when the data moves, keeping the
// window width, and the result is then clamped.
func (c *core) reboundTarget(a *axis) Domain {
	cur := a.target()
	target := cur
	if a.extent.OK && a.prevExtent.OK {
		w, e := cur.Width(), a.extent.Domain
		switch {
		case a.state.MaxInRange && a.state.MaxChanging:
			target = Domain{Min: e.Max - w, Max: e.Max}
		case a.state.MinInRange && a.state.MinChanging:
			target = Domain{Min: e.Min, Max: e.Min + w}
		}
	}
	return c.clamp(a, target).domain
}

// rebound animates a tracking axis back to a legal, data-anchored domain.
// It never runs while the user presses or the view coasts.
func (c *core) rebound(a *axis) {
	if !a.cfg.DomainTracking || a.state.Interacting || a.state.Coasting {
		return
	}
	if a.binding.Tweening() || a.state.Phase != Idle {
		return
	}
	cur := a.target()
	target := c.reboundTarget(a)
	if target.Equal(cur) {
		a.state.RecentlyInteracted = false
		return
	}
	if c.hooks.WillRebound != nil && !c.hooks.WillRebound(a.dir, cur, target) {
		return
	}
	timing := c.cfg.Rebound
	if a.state.RecentlyInteracted {
		timing = c.cfg.InteractionRebound
	}
	a.state.RecentlyInteracted = false
	c.gestures.neutralize(a.dir)

	c.log.WithFields(c.fields(a)).WithFields(logrus.Fields{
		"from":  cur.String(),
		"to":    target.String(),
		"tween": timing.Duration,
	}).Debug("rebound")

	done := func() {
		a.state.leave(Bounding)
		if c.hooks.DidRebound != nil {
			c.hooks.DidRebound(a.dir, a.binding.Domain())
		}
	}
	a.binding.Interrupt()
	a.state.enter(Bounding, timing.Enabled())
	a.binding.SetDomain(target, &Transition{Timing: timing, OnEnd: done, OnInterrupt: done})
}
