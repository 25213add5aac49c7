package scale

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func EaseLinear(t float64) float64  { return t }
func EaseInQuad(t float64) float64  { return t * t }
func EaseOutQuad(t float64) float64 { return t * (2 - t) }

func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func EaseOutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return (t-1)*u*u + 1
}

var easings = map[string]Easing{
	"linear":       EaseLinear,
	"in-quad":      EaseInQuad,
	"out-quad":     EaseOutQuad,
	"in-out-quad":  EaseInOutQuad,
	"out-cubic":    EaseOutCubic,
	"in-out-cubic": EaseInOutCubic,
}

// ParseEasing looks an easing up by name. The empty name is linear.
func ParseEasing(name string) (Easing, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return EaseLinear, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownEasing, name, strings.Join(EasingNames(), ", "))
	}
	return e, nil
}

func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Timing describes a tween. A zero Duration means "apply immediately".
type Timing struct {
	Duration time.Duration
	Easing   Easing
}

func (t Timing) Enabled() bool { return t.Duration > 0 }

func (t Timing) ease(u float64) float64 {
	if u >= 1 {
		return 1
	}
	if t.Easing == nil {
		return u
	}
	return t.Easing(u)
}

// Transition is a timed scale change together with its completion callbacks.
// Exactly one of OnEnd and OnInterrupt runs for every transition handed to a
// Binding.
type Transition struct {
	Timing      Timing
	OnEnd       func()
	OnInterrupt func()
}
