package scale

import (
	"errors"
	"math"
	"time"
)

var (
	ErrUnsupportedKind = errors.New("scale: unsupported domain kind")
	ErrInvalidBound    = errors.New("scale: invalid bound")
	ErrUnknownEasing   = errors.New("scale: unknown easing")
	ErrInvalidConfig   = errors.New("scale: invalid config")
)

// Kind converts domain values of type T to and from the scalar line the
// engine works on.
type Kind[T any] interface {
	Name() string
	ToScalar(v T) float64
	FromScalar(x float64) T
	Interpolate(a, b T, t float64) T
}

// ZoomDefaulter is implemented by kinds that know their narrowest and widest
// domain-units-per-pixel ratios. Auto zoom edges resolve to these.
type ZoomDefaulter interface {
	DefaultZoom() (min, max float64)
}

// Numeric is the dimensionless float64 kind.
type Numeric struct{}

func (Numeric) Name() string                    { return "numeric" }
func (Numeric) ToScalar(v float64) float64      { return v }
func (Numeric) FromScalar(x float64) float64    { return x }
func (Numeric) DefaultZoom() (float64, float64) { return 0.001, 1e6 }

func (Numeric) Interpolate(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// Temporal maps time.Time to milliseconds since the Unix epoch.
type Temporal struct{}

func (Temporal) Name() string { return "temporal" }

func (Temporal) ToScalar(v time.Time) float64 {
	return float64(v.UnixMilli()) + float64(v.Nanosecond()%int(time.Millisecond))/1e6
}

func (Temporal) FromScalar(x float64) time.Time {
	ms := math.Floor(x)
	frac := time.Duration((x - ms) * 1e6)
	return time.UnixMilli(int64(ms)).Add(frac)
}

func (k Temporal) Interpolate(a, b time.Time, t float64) time.Time {
	return k.FromScalar(Numeric{}.Interpolate(k.ToScalar(a), k.ToScalar(b), t))
}

// DefaultZoom ranges from one millisecond to one day per pixel.
func (Temporal) DefaultZoom() (float64, float64) { return 1, 86_400_000 }

func zoomDefaults(kind any) (min, max float64, ok bool) {
	zd, ok := kind.(ZoomDefaulter)
	if !ok {
		return 0, 0, false
	}
	min, max = zd.DefaultZoom()
	return min, max, true
}
