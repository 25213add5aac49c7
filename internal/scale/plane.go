package scale

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Hooks let collaborators observe, and for the Will hooks veto, the visual
// side effects of the engine. Nil hooks are skipped.
type Hooks struct {
	WillFit        func(dir Dir, from, to Domain) bool
	DidFit         func(dir Dir, d Domain)
	FitInterrupted func(dir Dir)
	WillRebound    func(dir Dir, from, to Domain) bool
	DidRebound     func(dir Dir, d Domain)
}

type Option func(*core)

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *core) { c.log = l }
}

func WithHooks(h Hooks) Option {
	return func(c *core) { c.hooks = h }
}

func WithChildren(children ...Child) Option {
	return func(c *core) { c.children = children }
}

type axis struct {
	dir     Dir
	cfg     AxisConfig
	zoomMin float64
	zoomMax float64
	binding *Binding
	state   State

	extent     Extent
	prevExtent Extent

	fitRequested bool
	fitTween     bool
	autoFit      bool
	rangeChanged bool

	warnedDomain bool
	warnedZoom   bool
}

func (a *axis) target() Domain { return a.binding.Target().Domain }

// core is the kind-independent part of a Plane.
type core struct {
	cfg      Config
	x        *axis
	y        *axis
	children []Child
	gestures *Gestures
	hooks    Hooks
	log      logrus.FieldLogger

	now     time.Duration
	started bool
	pending bool
}

func (c *core) axes() [2]*axis { return [2]*axis{c.x, c.y} }

func (c *core) axis(dir Dir) *axis {
	if dir == Y {
		return c.y
	}
	return c.x
}

// Plane couples an x and a y axis, their children and a gesture
// coordinator. All methods must be called from the goroutine driving
// Advance.
type Plane[XV, YV any] struct {
	*core
	xKind Kind[XV]
	yKind Kind[YV]
}

func NewPlane[XV, YV any](xKind Kind[XV], yKind Kind[YV], cfg Config, opts ...Option) (*Plane[XV, YV], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	xMin, xMax, err := checkKind(X, xKind, xKind.Name(), cfg.X)
	if err != nil {
		return nil, err
	}
	yMin, yMax, err := checkKind(Y, yKind, yKind.Name(), cfg.Y)
	if err != nil {
		return nil, err
	}
	unit := Linear{Domain: Domain{Min: 0, Max: 1}, Range: Range{Min: 0, Max: 1}}
	xa := &axis{dir: X, cfg: cfg.X, zoomMin: xMin, zoomMax: xMax, binding: NewBinding(unit), autoFit: cfg.X.AutoFit}
	ya := &axis{dir: Y, cfg: cfg.Y, zoomMin: yMin, zoomMax: yMax, binding: NewBinding(unit), autoFit: cfg.Y.AutoFit}
	c := &core{cfg: cfg, x: xa, y: ya, log: logrus.StandardLogger()}
	c.gestures = newGestures(c)
	for _, opt := range opts {
		opt(c)
	}
	return &Plane[XV, YV]{core: c, xKind: xKind, yKind: yKind}, nil
}

func (p *Plane[XV, YV]) XDomain() (XV, XV) {
	d := p.x.binding.Domain()
	return p.xKind.FromScalar(d.Min), p.xKind.FromScalar(d.Max)
}

func (p *Plane[XV, YV]) YDomain() (YV, YV) {
	d := p.y.binding.Domain()
	return p.yKind.FromScalar(d.Min), p.yKind.FromScalar(d.Max)
}

// SetXDomain changes the x domain, tweened by the first timing if given.
func (p *Plane[XV, YV]) SetXDomain(min, max XV, timing ...Timing) {
	p.setDomain(p.x, Domain{Min: p.xKind.ToScalar(min), Max: p.xKind.ToScalar(max)}, timing)
}

func (p *Plane[XV, YV]) SetYDomain(min, max YV, timing ...Timing) {
	p.setDomain(p.y, Domain{Min: p.yKind.ToScalar(min), Max: p.yKind.ToScalar(max)}, timing)
}

func (p *Plane[XV, YV]) XKind() Kind[XV] { return p.xKind }
func (p *Plane[XV, YV]) YKind() Kind[YV] { return p.yKind }

func (c *core) setDomain(a *axis, d Domain, timing []Timing) {
	a.binding.Interrupt()
	a.autoFit = false
	var tr *Transition
	if len(timing) > 0 && timing[0].Enabled() {
		tr = &Transition{Timing: timing[0]}
	}
	a.binding.SetDomain(d, tr)
}

func (c *core) XRange() Range { return c.x.binding.Range() }
func (c *core) YRange() Range { return c.y.binding.Range() }

// SetRanges lays the plane out over the given pixel ranges.
func (c *core) SetRanges(x, y Range) {
	for i, r := range [2]Range{x, y} {
		a := c.axes()[i]
		if a.binding.Target().Range.Equal(r) {
			continue
		}
		a.binding.SetRange(r)
		a.rangeChanged = true
	}
}

func (c *core) XScale() Linear { return c.x.binding.Scale() }
func (c *core) YScale() Linear { return c.y.binding.Scale() }

// XBinding is the x axis binding; children inherit the x scale through it.
func (c *core) XBinding() *Binding { return c.x.binding }
func (c *core) YBinding() *Binding { return c.y.binding }

func (c *core) SetChildren(children ...Child) { c.children = children }
func (c *core) Children() []Child            { return c.children }

// Fit requests a fit of both axes on the next pass.
func (c *core) Fit(tween bool) {
	c.FitX(tween)
	c.FitY(tween)
}

func (c *core) FitX(tween bool) { c.x.fitRequested, c.x.fitTween = true, tween }
func (c *core) FitY(tween bool) { c.y.fitRequested, c.y.fitTween = true, tween }

func (c *core) XInRange() bool    { return c.x.state.InRange() }
func (c *core) XMinInRange() bool { return c.x.state.MinInRange }
func (c *core) XMaxInRange() bool { return c.x.state.MaxInRange }
func (c *core) YInRange() bool    { return c.y.state.InRange() }
func (c *core) YMinInRange() bool { return c.y.state.MinInRange }
func (c *core) YMaxInRange() bool { return c.y.state.MaxInRange }

func (c *core) State(dir Dir) State           { return c.axis(dir).state }
func (c *core) Extent(dir Dir) Extent         { return c.axis(dir).extent }
func (c *core) AxisConfig(dir Dir) AxisConfig { return c.axis(dir).cfg }
func (c *core) Gestures() *Gestures           { return c.gestures }

func (c *core) SetDomainTracking(dir Dir, on bool) {
	c.axis(dir).cfg.DomainTracking = on
	c.pending = true
}

func (c *core) SetGesturesEnabled(dir Dir, on bool) {
	c.axis(dir).cfg.Gestures = on
	if !on {
		c.gestures.neutralize(dir)
	}
}

func (c *core) SetPreserveAspectRatio(on bool) {
	c.cfg.PreserveAspectRatio = on
	c.x.rangeChanged = true
}

func (c *core) PreserveAspectRatio() bool { return c.cfg.PreserveAspectRatio }

// Advance runs one frame pass at monotonic time now: gestures, then tweens
// progress, then extent aggregation, fit, clamp and rebound run in that order.
// It reports whether the published scales changed or still animate.
func (c *core) Advance(now time.Duration) bool {
	var dt time.Duration
	if c.started && now > c.now {
		dt = now - c.now
	}
	c.now, c.started = now, true

	c.gestures.advance(dt)
	for _, a := range c.axes() {
		a.binding.Advance(dt)
	}
	for _, a := range c.axes() {
		c.aggregate(a)
	}
	c.fit()
	for _, a := range c.axes() {
		c.bound(a)
	}
	for _, a := range c.axes() {
		c.rebound(a)
	}
	for _, a := range c.axes() {
		c.updateInRange(a)
		a.rangeChanged = false
	}

	active := c.pending || c.gestures.Active()
	c.pending = false
	for _, a := range c.axes() {
		if a.binding.TakeDirty() || a.binding.Tweening() {
			active = true
		}
	}
	return active
}

func (c *core) aggregate(a *axis) {
	a.prevExtent = a.extent
	a.extent = Aggregate(a.dir, a.binding, c.children)
	prev, cur := a.prevExtent, a.extent
	w := a.target().Width()
	a.state.MinChanging = prev.OK && cur.OK && !near(prev.Domain.Min, cur.Domain.Min, w)
	a.state.MaxChanging = prev.OK && cur.OK && !near(prev.Domain.Max, cur.Domain.Max, w)
	if a.autoFit && cur.OK && (!prev.OK || !prev.Domain.Equal(cur.Domain)) {
		a.fitRequested = true
		a.fitTween = prev.OK
	}
}

func (c *core) updateInRange(a *axis) {
	if !a.extent.OK {
		a.state.MinInRange, a.state.MaxInRange = false, false
		return
	}
	d, e := a.target(), a.extent.Domain
	a.state.MinInRange = d.Min < e.Min || near(d.Min, e.Min, d.Width())
	a.state.MaxInRange = d.Max > e.Max || near(d.Max, e.Max, d.Width())
}

func (c *core) fields(a *axis) logrus.Fields {
	return logrus.Fields{"axis": a.dir.String(), "phase": a.state.Phase.String()}
}
