package series

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaleview/internal/scale"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestReadCSV(t *testing.T) {
	in := "timestamp,load\n" +
		"2024-05-01T12:00:10Z,3\n" +
		"2024-05-01 12:00:00,1.5\n" +
		"1714564805,2\n" +
		"garbage,4\n" +
		"2024-05-01T12:00:20Z,nan?\n"
	s, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "load", s.Name)
	require.Equal(t, 3, s.Len())
	assert.True(t, s.Times[0].Equal(t0))
	assert.True(t, s.Times[1].Equal(t0.Add(5*time.Second)))
	assert.True(t, s.Times[2].Equal(t0.Add(10*time.Second)))
	assert.Equal(t, []float64{1.5, 2, 3}, s.Values)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n"))
	assert.ErrorIs(t, err, ErrNoColumns)
	_, err = ReadCSV(strings.NewReader("time\n2024-01-01\n"))
	assert.ErrorIs(t, err, ErrNoColumns)
	_, err = ReadCSV(strings.NewReader("time,value\nx,y\n"))
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestAppendKeepsOrder(t *testing.T) {
	s := &Series{Name: "s"}
	require.NoError(t, s.Append(t0, 1))
	require.NoError(t, s.Append(t0, 2))
	assert.Error(t, s.Append(t0.Add(-time.Second), 3))
	assert.Equal(t, 2, s.Len())
}

func TestParseTime(t *testing.T) {
	ts, err := ParseTime("1714564800.5")
	require.NoError(t, err)
	assert.True(t, ts.Equal(t0.Add(500*time.Millisecond)))
	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "2024-05-01 12:00:00", Label("%Y-%m-%d %H:%M:%S", t0))
	assert.Equal(t, "12:00", Label("%H:%M", t0))
}

func ramp(n int) *Series {
	s := &Series{Name: "ramp"}
	for i := 0; i < n; i++ {
		_ = s.Append(t0.Add(time.Duration(i)*time.Second), float64(i%5))
	}
	return s
}

func TestLayerReveal(t *testing.T) {
	l := NewLayer(ramp(10), nil, nil)
	assert.Equal(t, 10, l.Revealed())

	l.Reveal(3)
	ts, vs := l.Samples()
	assert.Len(t, ts, 3)
	assert.Equal(t, []float64{0, 1, 2}, vs)
	d, ok := l.DataDomain(scale.X)
	require.True(t, ok)
	assert.Equal(t, float64(t0.UnixMilli()), d.Min)
	assert.Equal(t, float64(t0.Add(2*time.Second).UnixMilli()), d.Max)
	d, ok = l.DataDomain(scale.Y)
	require.True(t, ok)
	assert.Equal(t, scale.Domain{Min: 0, Max: 2}, d)

	l.Reveal(-1)
	_, ok = l.DataDomain(scale.X)
	assert.False(t, ok)
	l.Reveal(99)
	assert.Equal(t, 10, l.Revealed())
}

func TestTrackingFollowsReveal(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := scale.DefaultConfig()
	cfg.X.DomainTracking = true
	cfg.Rescale = scale.Timing{}
	cfg.Rebound = scale.Timing{}
	p, err := scale.NewPlane[time.Time, float64](scale.Temporal{}, scale.Numeric{}, cfg, scale.WithLogger(logger))
	require.NoError(t, err)
	p.SetRanges(scale.Range{Min: 0, Max: 100}, scale.Range{Min: 50, Max: 0})

	l := NewLayer(ramp(60), p.XBinding(), p.YBinding())
	l.Reveal(11)
	p.SetChildren(l)
	p.Fit(false)
	p.Advance(0)
	min, max := p.XDomain()
	assert.True(t, min.Equal(t0))
	assert.True(t, max.Equal(t0.Add(10*time.Second)))

	now := time.Duration(0)
	for n := 12; n <= 30; n++ {
		l.Reveal(n)
		now += 16 * time.Millisecond
		p.Advance(now)
	}
	min, max = p.XDomain()
	assert.True(t, max.Equal(t0.Add(29*time.Second)), "max %s", max)
	assert.Equal(t, 10*time.Second, max.Sub(min))
	assert.True(t, p.XMaxInRange())
}
