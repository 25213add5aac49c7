package scale

import (
	"math"

	"github.com/sirupsen/logrus"
)

// fit turns pending fit requests into new domains. Candidates for both axes
// are computed before either is committed so the aspect correction sees
// both.
func (c *core) fit() {
	var (
		cand  [2]Domain
		has   [2]bool
		tween [2]bool
	)
	for i, a := range c.axes() {
		if !a.fitRequested || !a.extent.OK || a.state.Interacting {
			continue
		}
		a.fitRequested = false
		if a.target().Equal(a.extent.Domain) {
			continue
		}
		cand[i], has[i], tween[i] = a.extent.Domain, true, a.fitTween
	}

	if c.cfg.PreserveAspectRatio && c.cfg.FitAspectRatio != 0 &&
		(has[0] || has[1] || c.x.rangeChanged || c.y.rangeChanged) {
		dx, dy := c.x.target(), c.y.target()
		if has[0] {
			dx = cand[0]
		}
		if has[1] {
			dy = cand[1]
		}
		nx, ny := c.correctAspect(dx, dy)
		if !nx.Equal(dx) {
			cand[0], has[0] = nx, true
			tween[0] = tween[0] || tween[1]
		}
		if !ny.Equal(dy) {
			cand[1], has[1] = ny, true
			tween[1] = tween[1] || tween[0]
		}
	}

	for i, a := range c.axes() {
		if has[i] && !a.state.Interacting {
			c.applyFit(a, cand[i], tween[i])
		}
	}
}

// correctAspect adjusts exactly one of dx, dy so that their width ratio
// matches |FitAspectRatio| times the range aspect ratio. A positive ratio
// widens the axis that falls short, a negative one narrows the axis that
// is too long.
func (c *core) correctAspect(dx, dy Domain) (Domain, Domain) {
	rx, ry := c.x.binding.Target().Range.Span(), c.y.binding.Target().Range.Span()
	if rx == 0 || ry == 0 || dx.Width() <= 0 || dy.Width() <= 0 {
		return dx, dy
	}
	r := c.cfg.FitAspectRatio
	want := math.Abs(r) * rx / ry
	have := dx.Width() / dy.Width()
	if equiv(have, want) {
		return dx, dy
	}
	if (have < want) == (r > 0) {
		dx = dx.WithWidth(dy.Width()*want, c.cfg.FitAlign[0])
	} else {
		dy = dy.WithWidth(dx.Width()/want, c.cfg.FitAlign[1])
	}
	return dx, dy
}

func (c *core) applyFit(a *axis, d Domain, tween bool) {
	from := a.target()
	d = c.clamp(a, d).domain
	if d.Equal(from) {
		return
	}
	if c.hooks.WillFit != nil && !c.hooks.WillFit(a.dir, from, d) {
		return
	}
	var timing Timing
	if tween {
		timing = c.cfg.Rescale
	}
	c.log.WithFields(c.fields(a)).WithFields(logrus.Fields{
		"from":  from.String(),
		"to":    d.String(),
		"tween": timing.Duration,
	}).Debug("fit")

	a.binding.Interrupt()
	a.state.enter(Fitting, timing.Enabled())
	a.binding.SetDomain(d, &Transition{
		Timing: timing,
		OnEnd: func() {
			a.state.leave(Fitting)
			if c.hooks.DidFit != nil {
				c.hooks.DidFit(a.dir, a.binding.Domain())
			}
		},
		OnInterrupt: func() {
			a.state.leave(Fitting)
			c.log.WithFields(c.fields(a)).Debug("fit interrupted")
			if c.hooks.FitInterrupted != nil {
				c.hooks.FitInterrupted(a.dir)
			}
		},
	})
}
