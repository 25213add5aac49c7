package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaleview/internal/config"
	"scaleview/internal/geom"
	"scaleview/internal/scale"
)

const delta = 1e-6

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Rescale.Duration = 0
	cfg.Rebound.Duration = 0
	cfg.InteractionRebound.Duration = 0
	cfg.Coast.MinSpeed = 1e9
	cfg.MarkerRadius = 0
	log, _ := test.NewNullLogger()
	m, err := New(cfg, log)
	require.NoError(t, err)
	// 40x10 map cells: 80x40 braille dots
	return update(t, m, tea.WindowSizeMsg{Width: 41, Height: 13})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func frame(t *testing.T, m Model, at time.Duration) Model {
	t.Helper()
	return update(t, m, frameMsg(m.start.Add(at)))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a model showing two points at (0,0) and (10,10), fitted.
func loaded(t *testing.T) Model {
	t.Helper()
	m := testModel(t)
	d, err := geom.ParseWKT("MULTIPOINT ((0 0), (10 10))")
	require.NoError(t, err)
	m.setData("pts", d)
	return frame(t, m, 16*time.Millisecond)
}

func TestLayoutRanges(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, scale.Range{Min: 0, Max: 79}, m.plane.XRange())
	assert.Equal(t, scale.Range{Min: 39, Max: 0}, m.plane.YRange())

	m = update(t, m, key("tab"))
	lay := m.layout()
	assert.Equal(t, sidebarWidth+1, lay.ox)
	assert.Equal(t, float64(lay.w*2-1), m.plane.XRange().Max)
}

func TestLoadFitsWithAspect(t *testing.T) {
	m := loaded(t)
	xs, ys := m.plane.XScale(), m.plane.YScale()
	assert.True(t, ys.Domain.Equal(scale.Domain{Min: 0, Max: 10}), ys.Domain.String())
	assert.InDelta(t, 5, xs.Domain.Center(), delta)
	assert.InDelta(t, ys.UnitsPerPixel(), xs.UnitsPerPixel(), delta)
	assert.True(t, strings.HasPrefix(m.status, "fit "), m.status)
}

func TestDragPans(t *testing.T) {
	m := loaded(t)
	before := m.plane.XScale()
	upp := before.UnitsPerPixel()

	m = update(t, m, tea.MouseMsg{X: 20, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m = update(t, m, tea.MouseMsg{X: 30, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	assert.True(t, m.plane.State(scale.X).Interacting)
	assert.InDelta(t, before.Domain.Min-20*upp, m.plane.XScale().Domain.Min, delta)
	assert.True(t, m.plane.YScale().Domain.Equal(scale.Domain{Min: 0, Max: 10}))

	rows := m.stateRows()
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0][3], "interacting")

	m = update(t, m, tea.MouseMsg{X: 30, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	m = frame(t, m, 32*time.Millisecond)
	assert.False(t, m.plane.State(scale.X).Interacting)
	assert.False(t, m.plane.Gestures().Coasting())

	m = update(t, m, key("f"))
	m = frame(t, m, 48*time.Millisecond)
	assert.True(t, m.plane.XScale().Domain.Equal(before.Domain), m.plane.XScale().Domain.String())
}

func TestWheelZooms(t *testing.T) {
	m := loaded(t)
	w := m.plane.XScale().Domain.Width()
	m = update(t, m, tea.MouseMsg{X: 20, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.InDelta(t, w/1.2, m.plane.XScale().Domain.Width(), delta)

	m = update(t, m, key("-"))
	assert.InDelta(t, w, m.plane.XScale().Domain.Width(), delta)
}

func TestArrowKeyPans(t *testing.T) {
	m := loaded(t)
	before := m.plane.XScale()
	m = update(t, m, key("left"))
	assert.InDelta(t, before.Domain.Min-keyPan*before.UnitsPerPixel(), m.plane.XScale().Domain.Min, delta)
}

func TestToggles(t *testing.T) {
	m := testModel(t)
	require.False(t, m.plane.AxisConfig(scale.X).DomainTracking)
	m = update(t, m, key("t"))
	assert.True(t, m.plane.AxisConfig(scale.X).DomainTracking)
	assert.True(t, m.plane.AxisConfig(scale.Y).DomainTracking)

	require.True(t, m.plane.PreserveAspectRatio())
	m = update(t, m, key("r"))
	assert.False(t, m.plane.PreserveAspectRatio())

	m = update(t, m, key("3"))
	assert.Equal(t, "no dataset", m.status)
}

func TestLayerToggleChangesVisibleKinds(t *testing.T) {
	m := loaded(t)
	require.True(t, m.layer.Visible.Points)
	m = update(t, m, key("1"))
	assert.False(t, m.layer.Visible.Points)
	_, ok := m.layer.DataDomain(scale.X)
	assert.False(t, ok)
}

func TestFrameLoopStopsWhenIdle(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(frameMsg(m.start.Add(time.Second)))
	assert.Nil(t, cmd)

	m = frame(t, m, time.Second)
	assert.False(t, m.ticking)
	_, cmd = m.Update(key("f"))
	assert.NotNil(t, cmd)
}

func TestPasteWKT(t *testing.T) {
	m := testModel(t)
	m = update(t, m, key("p"))
	require.True(t, m.pasteMode)
	m = update(t, m, key("LINESTRING (0 0, 4 2)"))
	m = update(t, m, key("enter"))
	assert.False(t, m.pasteMode)
	require.NotNil(t, m.layer)
	assert.Len(t, m.layer.Data.Lines, 1)
	assert.Contains(t, m.status, "loaded: pasted WKT")
}

func TestHoverFindsVertex(t *testing.T) {
	m := loaded(t)
	// (0,0) lands on dot (20, 39): cell column 10, last map row
	m = update(t, m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionMotion})
	require.True(t, m.hover.ok)
	require.True(t, m.hover.hasVertex)
	assert.Equal(t, [2]float64{0, 0}, m.hover.vertex)
	assert.Contains(t, m.footer(m.layout()), "x=")
}

func TestRenderMap(t *testing.T) {
	m := loaded(t)
	lines := strings.Split(m.renderMap(40, 10), "\n")
	require.Len(t, lines, 10)
	assert.NotEqual(t, strings.Repeat(" ", 40), lines[0])
	assert.NotEqual(t, strings.Repeat(" ", 40), lines[9])
	assert.Equal(t, strings.Repeat(" ", 40), lines[5])
}

func TestAttributesSummary(t *testing.T) {
	m := loaded(t)
	m = update(t, m, key("a"))
	assert.True(t, m.showAttrs)
	require.Len(t, m.tbl.Rows(), 1)
	assert.Equal(t, "pts", m.tbl.Rows()[0][1])
	assert.Equal(t, "2", m.tbl.Rows()[0][3])
}

func TestBrailleDots(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0)
	b.setPixel(3, 3)
	b.setPixel(4, 0)
	b.setPixel(-1, 2)
	assert.Equal(t, []string{"⠁⢀"}, b.toLines())
}

func TestClipSegment(t *testing.T) {
	x0, y0, x1, y1, ok := clipSegment(-10, 5, 10, 5, 0, 0, 4, 8)
	require.True(t, ok)
	assert.Equal(t, [4]float64{0, 5, 4, 5}, [4]float64{x0, y0, x1, y1})

	_, _, _, _, ok = clipSegment(-10, -5, 10, -5, 0, 0, 4, 8)
	assert.False(t, ok)

	x0, y0, x1, y1, ok = clipSegment(1, 1, 2, 3, 0, 0, 4, 8)
	require.True(t, ok)
	assert.Equal(t, [4]float64{1, 1, 2, 3}, [4]float64{x0, y0, x1, y1})
}

func TestFillHonorsHoles(t *testing.T) {
	b := newBrailleBuf(2, 2)
	outer := [][2]float64{{0, 0}, {4, 0}, {4, 8}, {0, 8}}
	b.fill([][][2]float64{outer})
	assert.Equal(t, []string{"⣿⣿", "⣿⣿"}, b.toLines())

	b = newBrailleBuf(2, 2)
	hole := [][2]float64{{1, 2}, {3, 2}, {3, 6}, {1, 6}}
	b.fill([][][2]float64{outer, hole})
	assert.Zero(t, b.m[0][0]&dotBits[1][2])
	assert.Zero(t, b.m[0][1]&dotBits[0][3])
	assert.NotZero(t, b.m[0][0]&dotBits[0][2])
}
