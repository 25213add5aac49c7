package trace

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaleview/internal/scale"
	"scaleview/internal/series"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ramp(n int) *series.Series {
	s := &series.Series{Name: "ramp"}
	for i := 0; i < n; i++ {
		_ = s.Append(t0.Add(time.Duration(i)*time.Second), float64(i%5))
	}
	return s
}

func immediate() scale.Config {
	cfg := scale.DefaultConfig()
	cfg.Rescale = scale.Timing{}
	cfg.Rebound = scale.Timing{}
	cfg.InteractionRebound = scale.Timing{}
	cfg.CoastMinSpeed = 100
	return cfg
}

func TestReplayTracksAfterDrag(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opt := DefaultOptions()
	opt.Width, opt.Height = 100, 50
	opt.DragAt = 5
	opt.DragStep = -40

	frames, err := Replay(ramp(60), immediate(), opt, logger)
	require.NoError(t, err)
	require.NotEmpty(t, frames)

	// the fit shows the first ten samples
	assert.True(t, frames[0].XMin.Equal(t0))
	assert.True(t, frames[0].XMax.Equal(t0.Add(9*time.Second)))

	for _, f := range frames[5:9] {
		assert.True(t, f.X.Interacting, "frame %d", f.N)
	}
	// dragged ahead of the data
	assert.True(t, frames[8].XMax.After(t0.Add(17*time.Second)), "max %s", frames[8].XMax)

	last := frames[len(frames)-1]
	assert.Equal(t, 60, last.Revealed)
	assert.True(t, last.XMax.Equal(t0.Add(59*time.Second)), "max %s", last.XMax)
	assert.InDelta(t, 9, last.XMax.Sub(last.XMin).Seconds(), 1e-3)
	assert.False(t, last.X.Interacting)
	assert.Equal(t, 0.0, last.YMin)
	assert.Equal(t, 4.0, last.YMax)

	var rebounds, logged int
	for _, e := range hook.AllEntries() {
		switch e.Message {
		case "rebound":
			rebounds++
		case "frame":
			logged++
		}
	}
	assert.NotZero(t, rebounds)
	assert.Equal(t, len(frames), logged)
}

func TestReplayWithoutDragStopsWhenIdle(t *testing.T) {
	logger, _ := test.NewNullLogger()
	opt := DefaultOptions()
	opt.DragAt = -1
	opt.Initial = 20

	frames, err := Replay(ramp(20), immediate(), opt, logger)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, 20, frames[1].Revealed)
}

func TestReplayEmpty(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := Replay(&series.Series{}, immediate(), DefaultOptions(), logger)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestReplayRejectsBadConfig(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := immediate()
	cfg.WheelZoom = -1
	_, err := Replay(ramp(5), cfg, DefaultOptions(), logger)
	assert.ErrorIs(t, err, scale.ErrInvalidConfig)
}
