package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaleview/internal/scale"
)

const sample = `
preserve-aspect = false
aspect-ratio = -2.0
wheel-zoom = 1.5

[x]
domain-min = 0
domain-max = "auto"
zoom-min = 0.01
zoom-max = "off"
pad-proportional = 0.05
tracking = true

[y]
gestures = false
autofit = true

[rebound]
duration = "100ms"
easing = "linear"

[coast]
deceleration = 0.01

[log]
level = "debug"
`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.False(t, c.PreserveAspect)
	assert.Equal(t, "0", c.X.DomainMin)
	assert.True(t, c.X.Tracking)
	assert.True(t, c.X.Gestures)
	assert.False(t, c.Y.Gestures)
	assert.True(t, c.Y.AutoFit)
	assert.Equal(t, 100*time.Millisecond, c.Rebound.Duration)
	assert.Equal(t, 250*time.Millisecond, c.Rescale.Duration)
	assert.Equal(t, 0.05, c.Coast.MinSpeed)
	assert.Equal(t, "debug", c.Log.Level)

	sc, err := c.Scale()
	require.NoError(t, err)
	assert.Equal(t, scale.Bounds{Min: scale.Literal(0), Max: scale.Auto}, sc.X.DomainBounds)
	assert.Equal(t, scale.Bounds{Min: scale.Literal(0.01), Max: scale.Off}, sc.X.ZoomBounds)
	assert.Equal(t, scale.Bounds{Min: scale.Off, Max: scale.Off}, sc.Y.DomainBounds)
	assert.Equal(t, scale.Padding{Proportional: 0.05}, sc.X.Padding)
	assert.True(t, sc.X.DomainTracking)
	assert.Equal(t, -2.0, sc.FitAspectRatio)
	assert.Equal(t, 1.5, sc.WheelZoom)
	assert.Equal(t, 0.01, sc.CoastDeceleration)
	assert.Equal(t, 100*time.Millisecond, sc.Rebound.Duration)
	assert.Equal(t, 0.25, sc.Rebound.Easing(0.25))
}

func TestDefaultsMatchEngine(t *testing.T) {
	sc, err := Default().Scale()
	require.NoError(t, err)
	want := scale.DefaultConfig()

	assert.Equal(t, want.X.DomainBounds, sc.X.DomainBounds)
	assert.Equal(t, want.X.ZoomBounds, sc.X.ZoomBounds)
	assert.Equal(t, want.Y.ZoomBounds, sc.Y.ZoomBounds)
	assert.Equal(t, want.X.Gestures, sc.X.Gestures)
	assert.Equal(t, want.FitAspectRatio, sc.FitAspectRatio)
	assert.Equal(t, want.FitAlign, sc.FitAlign)
	assert.Equal(t, want.CoastMinSpeed, sc.CoastMinSpeed)
	assert.Equal(t, want.CoastDeceleration, sc.CoastDeceleration)
	assert.Equal(t, want.WheelZoom, sc.WheelZoom)
	for _, pair := range [][2]scale.Timing{
		{want.Rescale, sc.Rescale},
		{want.Rebound, sc.Rebound},
		{want.InteractionRebound, sc.InteractionRebound},
	} {
		assert.Equal(t, pair[0].Duration, pair[1].Duration)
		assert.InDelta(t, pair[0].Easing(0.3), pair[1].Easing(0.3), 1e-12)
	}
	assert.True(t, sc.PreserveAspectRatio)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCALEVIEW_X_TRACKING", "true")
	t.Setenv("SCALEVIEW_REBOUND_EASING", "in-quad")
	t.Setenv("SCALEVIEW_WHEEL_ZOOM", "2")
	c, err := Decode(New())
	require.NoError(t, err)
	assert.True(t, c.X.Tracking)
	assert.Equal(t, "in-quad", c.Rebound.Easing)
	assert.Equal(t, 2.0, c.WheelZoom)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaleview.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\nfile = \"a.log\"\n"), 0o644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse([]string{"--log-level=debug", "--y-tracking", "--autofit"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))
	c, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "a.log", c.Log.File)
	assert.True(t, c.Y.Tracking)
	assert.False(t, c.X.Tracking)
	assert.True(t, c.X.AutoFit)
	assert.True(t, c.Y.AutoFit)
	assert.Equal(t, 16*time.Millisecond, c.FrameInterval)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestScaleErrors(t *testing.T) {
	c := Default()
	c.Y.ZoomMax = "lots"
	_, err := c.Scale()
	assert.ErrorIs(t, err, scale.ErrInvalidBound)
	assert.Contains(t, err.Error(), "y.zoom-max")

	c = Default()
	c.Rescale.Easing = "elastic"
	_, err = c.Scale()
	assert.ErrorIs(t, err, scale.ErrUnknownEasing)
	assert.Contains(t, err.Error(), "rescale.easing")
}
