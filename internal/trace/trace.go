// Package trace replays a time series on a temporal plane without a
// terminal: samples are revealed frame by frame, a scripted drag runs
// part way through, and every frame's domains and state are logged.
package trace

import (
	"errors"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"scaleview/internal/scale"
	"scaleview/internal/series"
)

var ErrEmptySeries = errors.New("trace: empty series")

type Options struct {
	// Width and Height are the plane's pixel size.
	Width, Height int
	// Initial samples are shown before the first frame; PerFrame more are
	// revealed on every frame after that.
	Initial  int
	PerFrame int
	// DragAt is the frame the scripted drag starts on; negative disables it.
	DragAt int
	// DragStep is the pointer movement per drag frame, in pixels.
	DragStep  float64
	DragSteps int

	Interval    time.Duration
	LabelFormat string
	// MaxFrames bounds the replay should the plane never settle.
	MaxFrames int
}

func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      200,
		Initial:     10,
		PerFrame:    1,
		DragAt:      10,
		DragStep:    -10,
		DragSteps:   3,
		Interval:    16 * time.Millisecond,
		LabelFormat: "%H:%M:%S",
		MaxFrames:   10000,
	}
}

// Frame is the plane as published after one pass.
type Frame struct {
	N        int
	At       time.Duration
	Revealed int
	XMin     time.Time
	XMax     time.Time
	YMin     float64
	YMax     float64
	X, Y     scale.State
}

// Replay runs s through a plane built from cfg with x tracking on. It
// returns every frame until the series is fully revealed and the plane
// is idle.
func Replay(s *series.Series, cfg scale.Config, opt Options, log logrus.FieldLogger) ([]Frame, error) {
	if s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	cfg.X.DomainTracking = true
	cfg.PreserveAspectRatio = false

	hooks := scale.Hooks{
		DidFit: func(dir scale.Dir, d scale.Domain) {
			log.WithFields(logrus.Fields{"axis": dir.String(), "domain": label(dir, d, opt.LabelFormat)}).Info("fit")
		},
		DidRebound: func(dir scale.Dir, d scale.Domain) {
			log.WithFields(logrus.Fields{"axis": dir.String(), "domain": label(dir, d, opt.LabelFormat)}).Info("rebound")
		},
	}
	p, err := scale.NewPlane[time.Time, float64](scale.Temporal{}, scale.Numeric{}, cfg,
		scale.WithLogger(log), scale.WithHooks(hooks))
	if err != nil {
		return nil, err
	}
	p.SetRanges(
		scale.Range{Min: 0, Max: float64(opt.Width - 1)},
		scale.Range{Min: float64(opt.Height - 1), Max: 0},
	)
	layer := series.NewLayer(s, p.XBinding(), p.YBinding())
	layer.Reveal(max(1, opt.Initial))
	p.SetChildren(layer)
	p.Fit(false)

	g := p.Gestures()
	cx, cy := float64(opt.Width)/2, float64(opt.Height)/2
	px := cx

	var frames []Frame
	for n := 0; n < opt.MaxFrames; n++ {
		now := time.Duration(n) * opt.Interval
		if n > 0 {
			layer.Reveal(layer.Revealed() + opt.PerFrame)
		}
		if opt.DragAt >= 0 {
			switch k := n - opt.DragAt; {
			case k == 0:
				g.Press(1, px, cy, now)
			case k > 0 && k <= opt.DragSteps:
				px += opt.DragStep
				g.Move(1, px, cy, now)
			case k == opt.DragSteps+1:
				px += opt.DragStep
				g.Release(1, px, cy, now)
			}
		}
		active := p.Advance(now)

		f := Frame{N: n, At: now, Revealed: layer.Revealed(), X: p.State(scale.X), Y: p.State(scale.Y)}
		f.XMin, f.XMax = p.XDomain()
		f.YMin, f.YMax = p.YDomain()
		frames = append(frames, f)
		log.WithFields(logrus.Fields{
			"frame":    n,
			"revealed": f.Revealed,
			"x":        series.Label(opt.LabelFormat, f.XMin) + " .. " + series.Label(opt.LabelFormat, f.XMax),
			"y":        humanize.FtoaWithDigits(f.YMin, 4) + " .. " + humanize.FtoaWithDigits(f.YMax, 4),
			"phase":    f.X.Phase.String(),
			"flags":    flags(f.X),
		}).Debug("frame")

		scripted := opt.DragAt >= 0 && n <= opt.DragAt+opt.DragSteps+1
		if !active && !scripted && layer.Revealed() == s.Len() {
			break
		}
	}
	return frames, nil
}

func label(dir scale.Dir, d scale.Domain, format string) string {
	if dir == scale.Y {
		return humanize.FtoaWithDigits(d.Min, 4) + " .. " + humanize.FtoaWithDigits(d.Max, 4)
	}
	k := scale.Temporal{}
	return series.Label(format, k.FromScalar(d.Min)) + " .. " + series.Label(format, k.FromScalar(d.Max))
}

func flags(s scale.State) string {
	var f []string
	if s.Interacting {
		f = append(f, "interacting")
	}
	if s.Coasting {
		f = append(f, "coasting")
	}
	if s.Tweening {
		f = append(f, "tweening")
	}
	if s.Clamped {
		f = append(f, "clamped")
	}
	if s.InRange() {
		f = append(f, "in-range")
	}
	return strings.Join(f, ",")
}
