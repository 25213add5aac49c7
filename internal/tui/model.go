package tui

import (
	"fmt"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"scaleview/internal/config"
	"scaleview/internal/geom"
	"scaleview/internal/scale"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2

	// mouse pointer id for the gesture coordinator
	mousePointer = 1
	// hoverRadius is how close, in braille dots, a vertex must be to highlight
	hoverRadius = 8
	// keyPan is the content shift of one arrow key press, in braille dots
	keyPan = 4
)

type frameMsg time.Time

// events receives engine hook notifications. Hooks fire inside Advance on
// whatever Model copy is current, so they write through a shared pointer.
type events struct {
	last string
}

func (e *events) hooks() scale.Hooks {
	return scale.Hooks{
		DidFit: func(dir scale.Dir, d scale.Domain) {
			e.last = fmt.Sprintf("fit %s %s", dir, formatDomain(d))
		},
		FitInterrupted: func(dir scale.Dir) {
			e.last = fmt.Sprintf("fit %s interrupted", dir)
		},
		DidRebound: func(dir scale.Dir, d scale.Domain) {
			e.last = fmt.Sprintf("rebound %s %s", dir, formatDomain(d))
		},
	}
}

type hover struct {
	ok        bool
	x, y      float64
	vertex    [2]float64
	hasVertex bool
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	selPath string

	cfg     config.Config
	log     logrus.FieldLogger
	plane   *scale.Plane[float64, float64]
	layer   *geom.Layer
	ev      *events
	start   time.Time
	ticking bool

	// paste mode
	pasteMode bool
	ta        textarea.Model

	inspectPopup string

	hover    hover
	dragging bool

	showAttrs bool
	tbl       table.Model

	showState bool
	stateTbl  table.Model
}

func New(cfg config.Config, log logrus.FieldLogger) (Model, error) {
	sc, err := cfg.Scale()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		helpVisible: true,
		status:      "scaleview ready",
		cfg:         cfg,
		log:         log,
		ev:          &events{},
		start:       time.Now(),
		ticking:     true,
	}
	m.plane, err = scale.NewPlane[float64, float64](scale.Numeric{}, scale.Numeric{}, sc,
		scale.WithLogger(log), scale.WithHooks(m.ev.hooks()))
	if err != nil {
		return Model{}, err
	}
	m.cwd, _ = os.Getwd()

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON and their MULTI forms). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.stateTbl = table.New(table.WithColumns(stateColumns), table.WithHeight(3))

	m.refreshDir()
	return m, nil
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.Config, log logrus.FieldLogger, path string) (Model, error) {
	m, err := New(cfg, log)
	if err != nil {
		return m, err
	}
	m.loadPath(path)
	return m, nil
}

// Init starts the frame loop; New marks the model as ticking for it.
func (m Model) Init() tea.Cmd { return m.frame() }

// Plane exposes the engine driving the view.
func (m Model) Plane() *scale.Plane[float64, float64] { return m.plane }

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// wake schedules a frame unless one is already pending.
func (m *Model) wake() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.frame()
}

func (m Model) now() time.Duration { return time.Since(m.start) }

// advance runs one engine pass and keeps ticking while anything moves.
func (m Model) advance(t time.Time) (Model, tea.Cmd) {
	active := m.plane.Advance(t.Sub(m.start))
	if m.ev.last != "" {
		m.status = m.ev.last
		m.ev.last = ""
	}
	if active {
		return m, m.frame()
	}
	m.ticking = false
	return m, nil
}

type layout struct {
	ox, oy int // map origin, in cells
	w, h   int // map size, in cells
	width  int // content width
	height int // content height
}

func (m Model) layout() layout {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	lay := layout{
		width:  max(10, m.width),
		height: max(4, m.height-headerHeight-footerHeight),
		oy:     headerHeight,
	}
	lay.w = max(10, lay.width-sw-1)
	lay.h = lay.height
	if m.showSidebar {
		lay.ox = sw + 1
	}
	return lay
}

// dot converts a cell to braille dot coordinates at the cell center.
func (lay layout) dot(cx, cy int) (px, py float64, inside bool) {
	px = float64(cx-lay.ox)*2 + 0.5
	py = float64(cy-lay.oy)*4 + 1.5
	inside = cx >= lay.ox && cx < lay.ox+lay.w && cy >= lay.oy && cy < lay.oy+lay.h
	return px, py, inside
}

// resize lays the plane out over the map area; y dots grow downwards.
func (m *Model) resize() {
	lay := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.height-2)
	}
	m.plane.SetRanges(
		scale.Range{Min: 0, Max: float64(lay.w*2 - 1)},
		scale.Range{Min: float64(lay.h*4 - 1), Max: 0},
	)
}

func (m *Model) setData(name string, d geom.Data) tea.Cmd {
	m.layer = geom.NewLayer(name, d, m.plane.XBinding(), m.plane.YBinding())
	m.layer.MarkerRadius = m.cfg.MarkerRadius
	m.plane.SetChildren(m.layer)
	m.plane.Fit(false)
	m.hover = hover{}
	m.log.WithFields(logrus.Fields{
		"name":     name,
		"bbox":     d.BBox.String(),
		"points":   len(d.Points),
		"lines":    len(d.Lines),
		"polygons": len(d.Polygons),
	}).Info("loaded dataset")
	m.status = "loaded: " + name + "  counts: " + d.Counts()
	return m.wake()
}
