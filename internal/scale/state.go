package scale

// Dir names an axis.
type Dir uint8

const (
	X Dir = iota
	Y
)

func (d Dir) String() string {
	if d == Y {
		return "y"
	}
	return "x"
}

// Phase is the transient correction an axis is going through.
type Phase uint8

const (
	Idle Phase = iota
	Fitting
	Bounding
)

func (p Phase) String() string {
	switch p {
	case Fitting:
		return "fitting"
	case Bounding:
		return "bounding"
	}
	return "idle"
}

// State is the per-axis state of the engine. Fitting and Bounding share the
// Phase field, so an axis is never doing both.
type State struct {
	Phase    Phase
	Tweening bool

	MinInRange  bool
	MaxInRange  bool
	MinChanging bool
	MaxChanging bool

	Interacting        bool
	Coasting           bool
	RecentlyInteracted bool

	Clamped     bool
	ZoomClamped bool
}

func (s State) InRange() bool { return s.MinInRange && s.MaxInRange }

func (s *State) enter(p Phase, tweening bool) {
	s.Phase = p
	s.Tweening = tweening
}

func (s *State) leave(p Phase) {
	if s.Phase == p {
		s.Phase = Idle
		s.Tweening = false
	}
}
