package scale

import (
	"math"
	"time"
)

// GestureInput is the live record of one pointer. Velocities are in pixels
// per millisecond, accelerations in pixels per millisecond squared.
type GestureInput struct {
	ID     int
	X, Y   float64
	VX, VY float64
	AX, AY float64
	T      time.Duration

	// domain values under the pointer when it was last anchored
	anchor [2]float64
}

func (p *GestureInput) pos(dir Dir) float64 {
	if dir == Y {
		return p.Y
	}
	return p.X
}

// Gestures maps pointer input onto direct domain mutations of the plane.
// One pointer pans, two pointers pinch-zoom, and a fast release coasts.
type Gestures struct {
	c        *core
	pointers []*GestureInput

	coasting bool
	velocity [2]float64
	decel    [2]float64
}

func newGestures(c *core) *Gestures {
	return &Gestures{c: c}
}

func (g *Gestures) enabled(dir Dir) bool { return g.c.axis(dir).cfg.Gestures }

// Active reports whether a pointer is down or the view is coasting.
func (g *Gestures) Active() bool { return len(g.pointers) > 0 || g.coasting }

func (g *Gestures) Coasting() bool { return g.coasting }

func (g *Gestures) Pointers() []GestureInput {
	out := make([]GestureInput, len(g.pointers))
	for i, p := range g.pointers {
		out[i] = *p
	}
	return out
}

func (g *Gestures) index(id int) int {
	for i, p := range g.pointers {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Press starts tracking pointer id. The first pointer down interrupts any
// fit or rebound tween and suppresses rebounds until release.
func (g *Gestures) Press(id int, x, y float64, t time.Duration) {
	if !g.enabled(X) && !g.enabled(Y) {
		return
	}
	if g.index(id) >= 0 {
		return
	}
	if len(g.pointers) == 0 {
		g.begin()
	}
	g.pointers = append(g.pointers, &GestureInput{ID: id, X: x, Y: y, T: t})
	g.reanchor()
}

func (g *Gestures) Move(id int, x, y float64, t time.Duration) {
	i := g.index(id)
	if i < 0 {
		return
	}
	g.track(g.pointers[i], x, y, t)
	g.apply()
}

// Release stops tracking pointer id. When the last pointer lifts the
// interaction ends and, if it was fast enough, coasting begins. A release
// reported at the last sampled position keeps the last velocity.
func (g *Gestures) Release(id int, x, y float64, t time.Duration) {
	i := g.index(id)
	if i < 0 {
		return
	}
	p := g.pointers[i]
	if x != p.X || y != p.Y {
		g.track(p, x, y, t)
		g.apply()
	}
	g.pointers = append(g.pointers[:i], g.pointers[i+1:]...)
	if len(g.pointers) > 0 {
		g.reanchor()
		return
	}
	g.end(p)
}

// Wheel zooms about the pointer by WheelZoom per notch; positive notches
// zoom out. The result is clamped to the axis bounds right away.
func (g *Gestures) Wheel(x, y, notches float64) {
	if notches == 0 || g.c.cfg.WheelZoom <= 0 {
		return
	}
	f := math.Pow(g.c.cfg.WheelZoom, notches)
	pos := [2]float64{x, y}
	g.stopCoasting()
	for _, a := range g.c.axes() {
		if !a.cfg.Gestures {
			continue
		}
		g.touch(a)
		s := a.binding.Target()
		anchor := s.Invert(pos[a.dir])
		d := Domain{
			Min: anchor + (s.Domain.Min-anchor)*f,
			Max: anchor + (s.Domain.Max-anchor)*f,
		}
		a.binding.SetDomain(g.c.clamp(a, d).domain, nil)
	}
}

// Pan moves the content by a pixel delta, as a discrete interaction.
func (g *Gestures) Pan(dx, dy float64) {
	delta := [2]float64{dx, dy}
	g.stopCoasting()
	for _, a := range g.c.axes() {
		if !a.cfg.Gestures || delta[a.dir] == 0 {
			continue
		}
		g.touch(a)
		a.binding.SetDomain(shift(a.binding.Target(), delta[a.dir]), nil)
	}
}

// touch interrupts tweens on a for a discrete interaction.
func (g *Gestures) touch(a *axis) {
	a.binding.Interrupt()
	a.autoFit = false
	if !a.state.Interacting {
		a.state.RecentlyInteracted = true
	}
}

func (g *Gestures) begin() {
	g.stopCoasting()
	for _, a := range g.c.axes() {
		if !a.cfg.Gestures {
			continue
		}
		a.binding.Interrupt()
		a.autoFit = false
		a.state.Interacting = true
		a.state.RecentlyInteracted = false
	}
}

func (g *Gestures) end(last *GestureInput) {
	for _, a := range g.c.axes() {
		if !a.cfg.Gestures {
			continue
		}
		a.state.Interacting = false
		a.state.RecentlyInteracted = true
	}
	speed := math.Hypot(last.VX, last.VY)
	if speed < g.c.cfg.CoastMinSpeed || speed == 0 || g.c.cfg.CoastDeceleration <= 0 {
		g.c.pending = true
		return
	}
	v := [2]float64{last.VX, last.VY}
	for _, a := range g.c.axes() {
		if v[a.dir] == 0 {
			continue
		}
		g.velocity[a.dir] = v[a.dir]
		g.decel[a.dir] = g.c.cfg.CoastDeceleration * math.Abs(v[a.dir]) / speed
		a.state.Coasting = true
		g.coasting = true
	}
}

// reanchor pins every pointer to the domain values currently under it.
func (g *Gestures) reanchor() {
	xs, ys := g.c.x.binding.Target(), g.c.y.binding.Target()
	for _, p := range g.pointers {
		p.anchor = [2]float64{xs.Invert(p.X), ys.Invert(p.Y)}
	}
}

func (g *Gestures) track(p *GestureInput, x, y float64, t time.Duration) {
	if dt := float64(t-p.T) / float64(time.Millisecond); dt > 0 {
		vx, vy := (x-p.X)/dt, (y-p.Y)/dt
		p.AX, p.AY = (vx-p.VX)/dt, (vy-p.VY)/dt
		p.VX, p.VY = vx, vy
	}
	p.X, p.Y, p.T = x, y, t
	if !g.enabled(X) {
		p.VX, p.AX = 0, 0
	}
	if !g.enabled(Y) {
		p.VY, p.AY = 0, 0
	}
}

// apply keeps the anchored domain values under the pointers.
func (g *Gestures) apply() {
	if len(g.pointers) == 0 {
		return
	}
	for _, a := range g.c.axes() {
		if !a.cfg.Gestures {
			continue
		}
		s := a.binding.Target()
		p0 := g.pointers[0]
		pos0, anc0 := p0.pos(a.dir), p0.anchor[a.dir]
		d := s.Domain.Translate(anc0 - s.Invert(pos0))
		if len(g.pointers) > 1 {
			p1 := g.pointers[1]
			pos1, anc1 := p1.pos(a.dir), p1.anchor[a.dir]
			if math.Abs(pos1-pos0) >= 1 && !near(anc0, anc1, s.Domain.Width()) {
				k := (pos1 - pos0) / (anc1 - anc0)
				min := anc0 + (s.Range.Min-pos0)/k
				max := anc0 + (s.Range.Max-pos0)/k
				if min < max {
					d = Domain{Min: min, Max: max}
				}
			}
		}
		a.binding.SetDomain(d, nil)
	}
}

// advance coasts by dt with constant deceleration. When the last axis stops
// a re-evaluation pass is requested so a final rebound can run.
func (g *Gestures) advance(dt time.Duration) {
	if !g.coasting || dt <= 0 {
		return
	}
	ms := float64(dt) / float64(time.Millisecond)
	moving := false
	for _, a := range g.c.axes() {
		v := g.velocity[a.dir]
		if v == 0 {
			continue
		}
		dec := g.decel[a.dir]
		t := ms
		if stop := math.Abs(v) / dec; stop < t {
			t = stop
		}
		disp := v*t - math.Copysign(0.5*dec*t*t, v)
		a.binding.SetDomain(shift(a.binding.Target(), disp), nil)

		nv := v - math.Copysign(dec*ms, v)
		if nv*v <= 0 {
			nv = 0
			a.state.Coasting = false
		} else {
			moving = true
		}
		g.velocity[a.dir] = nv
	}
	if !moving {
		g.stopCoasting()
		g.c.pending = true
	}
}

// neutralize drops momentum on one axis so a rebound is not fought.
func (g *Gestures) neutralize(dir Dir) {
	g.velocity[dir] = 0
	g.c.axis(dir).state.Coasting = false
	for _, p := range g.pointers {
		if dir == X {
			p.VX, p.AX = 0, 0
		} else {
			p.VY, p.AY = 0, 0
		}
	}
	if g.velocity[X] == 0 && g.velocity[Y] == 0 {
		g.coasting = false
	}
}

func (g *Gestures) stopCoasting() {
	g.coasting = false
	g.velocity = [2]float64{}
	for _, a := range g.c.axes() {
		a.state.Coasting = false
	}
}

// shift returns s's domain moved so the content follows a pixel
// displacement.
func shift(s Linear, px float64) Domain {
	o := s.Range.Min
	return s.Domain.Translate(s.Invert(o) - s.Invert(o+px))
}
