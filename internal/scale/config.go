package scale

import (
	"fmt"
	"time"
)

// AxisConfig configures the constraints and policies of one axis.
type AxisConfig struct {
	DomainBounds Bounds
	ZoomBounds   Bounds
	Padding      Padding

	// DomainTracking keeps the window anchored to live data and animates
	// out-of-bounds domains back instead of clamping them.
	DomainTracking bool
	Gestures       bool

	// AutoFit refits whenever the data extent changes, until the first
	// user interaction or explicit domain change.
	AutoFit bool
}

// Config configures a Plane.
type Config struct {
	X AxisConfig
	Y AxisConfig

	PreserveAspectRatio bool
	// FitAspectRatio is the wanted ratio of x units to y units per pixel.
	// Positive values widen the short axis, negative ones narrow the long
	// axis.
	FitAspectRatio float64
	// FitAlign is the fraction of each domain kept fixed by the aspect
	// correction.
	FitAlign [2]float64

	Rescale            Timing
	Rebound            Timing
	InteractionRebound Timing

	// CoastMinSpeed is the release speed, in pixels per millisecond, below
	// which a drag does not coast.
	CoastMinSpeed float64
	// CoastDeceleration is in pixels per millisecond squared.
	CoastDeceleration float64
	// WheelZoom is the factor one wheel notch zooms by.
	WheelZoom float64
}

func DefaultConfig() Config {
	axis := AxisConfig{
		ZoomBounds: Bounds{Min: Auto, Max: Auto},
		Gestures:   true,
	}
	return Config{
		X:                  axis,
		Y:                  axis,
		FitAspectRatio:     1,
		FitAlign:           [2]float64{0.5, 0.5},
		Rescale:            Timing{Duration: 250 * time.Millisecond, Easing: EaseInOutQuad},
		Rebound:            Timing{Duration: 250 * time.Millisecond, Easing: EaseOutCubic},
		InteractionRebound: Timing{Duration: 500 * time.Millisecond, Easing: EaseOutCubic},
		CoastMinSpeed:      0.05,
		CoastDeceleration:  0.002,
		WheelZoom:          1.2,
	}
}

func (c Config) axis(dir Dir) AxisConfig {
	if dir == Y {
		return c.Y
	}
	return c.X
}

func (c Config) validate() error {
	for i, a := range c.FitAlign {
		if a < 0 || a > 1 {
			return fmt.Errorf("%w: fit align[%d] = %g outside [0,1]", ErrInvalidConfig, i, a)
		}
	}
	if c.CoastDeceleration < 0 || c.CoastMinSpeed < 0 {
		return fmt.Errorf("%w: negative coast parameters", ErrInvalidConfig)
	}
	if c.WheelZoom < 0 {
		return fmt.Errorf("%w: negative wheel zoom %g", ErrInvalidConfig, c.WheelZoom)
	}
	return nil
}

// checkKind rejects kinds that cannot resolve the auto zoom edges of cfg.
func checkKind(dir Dir, kind any, name string, cfg AxisConfig) (min, max float64, err error) {
	min, max, ok := zoomDefaults(kind)
	if ok {
		return min, max, nil
	}
	if cfg.ZoomBounds.Min.Mode == BoundAuto || cfg.ZoomBounds.Max.Mode == BoundAuto {
		return 0, 0, fmt.Errorf("%w: %s axis kind %q has no default zoom ratio; configure explicit zoom bounds", ErrUnsupportedKind, dir, name)
	}
	return 0, 0, nil
}
