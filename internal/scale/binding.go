package scale

import "time"

type tween struct {
	from        Linear
	to          Linear
	timing      Timing
	elapsed     time.Duration
	onEnd       func()
	onInterrupt func()
}

// Binding holds the scale of one axis. A binding either owns its scale or
// inherits the scale of its parent; writes to an inherited binding detach
// it, while the Base setters write through to the owning ancestor.
type Binding struct {
	parent *Binding
	owned  bool

	scale  Linear // displayed
	target Linear
	tw     *tween

	dirty bool
}

func NewBinding(s Linear) *Binding {
	return &Binding{owned: true, scale: s, target: s, dirty: true}
}

// NewInheritedBinding returns a binding that displays parent's scale until it
// is written to.
func NewInheritedBinding(parent *Binding) *Binding {
	return &Binding{parent: parent}
}

func (b *Binding) Inherited() bool { return !b.owned && b.parent != nil }

// Owner is the nearest binding, starting at b, that owns a scale.
func (b *Binding) Owner() *Binding {
	c := b
	for c.Inherited() {
		c = c.parent
	}
	return c
}

func (b *Binding) Scale() Linear  { return b.Owner().scale }
func (b *Binding) Target() Linear { return b.Owner().target }
func (b *Binding) Domain() Domain { return b.Scale().Domain }
func (b *Binding) Range() Range   { return b.Scale().Range }
func (b *Binding) Tweening() bool { return b.Owner().tw != nil }

// Set replaces the scale, animated when tr carries an enabled timing. An
// in-flight tween is interrupted first; the new tween starts from the
// currently displayed scale rather than the old target.
func (b *Binding) Set(s Linear, tr *Transition) {
	if b.Inherited() {
		b.scale, b.target = b.Scale(), b.Target()
		b.owned = true
	}
	b.Interrupt()
	if tr == nil || !tr.Timing.Enabled() || b.scale.Equal(s) {
		b.scale, b.target = s, s
		b.dirty = true
		if tr != nil && tr.OnEnd != nil {
			tr.OnEnd()
		}
		return
	}
	b.tw = &tween{
		from:        b.scale,
		to:          s,
		timing:      tr.Timing,
		onEnd:       tr.OnEnd,
		onInterrupt: tr.OnInterrupt,
	}
	b.target = s
	b.dirty = true
}

func (b *Binding) SetDomain(d Domain, tr *Transition) {
	b.Set(b.Target().WithDomain(d), tr)
}

// SetRange moves the pixel range without disturbing a domain tween.
func (b *Binding) SetRange(r Range) {
	if b.Inherited() {
		b.scale, b.target = b.Scale(), b.Target()
		b.owned = true
	}
	if b.scale.Range.Equal(r) && b.target.Range.Equal(r) {
		return
	}
	b.scale = b.scale.WithRange(r)
	b.target = b.target.WithRange(r)
	if b.tw != nil {
		b.tw.from = b.tw.from.WithRange(r)
		b.tw.to = b.tw.to.WithRange(r)
	}
	b.dirty = true
}

func (b *Binding) SetBase(s Linear, tr *Transition)       { b.Owner().Set(s, tr) }
func (b *Binding) SetBaseDomain(d Domain, tr *Transition) { b.Owner().SetDomain(d, tr) }
func (b *Binding) SetBaseRange(r Range)                   { b.Owner().SetRange(r) }

// Interrupt finalizes an in-flight tween at its displayed value and runs its
// OnInterrupt callback. It reports whether a tween was interrupted.
func (b *Binding) Interrupt() bool {
	o := b.Owner()
	tw := o.tw
	if tw == nil {
		return false
	}
	o.tw = nil
	o.target = o.scale
	o.dirty = true
	if tw.onInterrupt != nil {
		tw.onInterrupt()
	}
	return true
}

// Advance moves an owned tween forward by dt and reports whether the
// displayed scale changed.
func (b *Binding) Advance(dt time.Duration) bool {
	tw := b.tw
	if tw == nil {
		return false
	}
	tw.elapsed += dt
	u := float64(tw.elapsed) / float64(tw.timing.Duration)
	if u >= 1 {
		b.tw = nil
		b.scale = tw.to
		b.dirty = true
		if tw.onEnd != nil {
			tw.onEnd()
		}
		return true
	}
	b.scale = tw.from.Interpolate(tw.to, tw.timing.ease(u))
	b.dirty = true
	return true
}

func (b *Binding) Dirty() bool {
	return b.dirty || (b.Inherited() && b.parent.Dirty())
}

// TakeDirty reports and clears this binding's own dirty mark.
func (b *Binding) TakeDirty() bool {
	d := b.dirty
	b.dirty = false
	return d
}
