package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"scaleview/internal/geom"
	"scaleview/internal/scale"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, m.wake()
	case frameMsg:
		return m.advance(msg.Time())
	case tea.KeyMsg:
		return m.key(msg)
	case tea.MouseMsg:
		return m.mouse(msg)
	}
	// Pass other messages, such as filter results, to the list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (msg frameMsg) Time() time.Time { return time.Time(msg) }

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		return m.pasteKey(msg)
	}

	g := m.plane.Gestures()
	var cmd tea.Cmd
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1", "2", "3", "l":
		if m.layer == nil {
			m.status = "no dataset"
			break
		}
		v := &m.layer.Visible
		switch msg.String() {
		case "1":
			v.Points = !v.Points
		case "2":
			v.Lines = !v.Lines
		case "3":
			v.Polygons = !v.Polygons
		case "l":
			all := v.Points && v.Lines && v.Polygons
			*v = geom.Kinds{Points: !all, Lines: !all, Polygons: !all}
		}
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", v.Points, v.Lines, v.Polygons)
		cmd = m.wake()
	case "+", "=":
		x, y := m.center()
		g.Wheel(x, y, -1)
		cmd = m.wake()
	case "-", "_":
		x, y := m.center()
		g.Wheel(x, y, 1)
		cmd = m.wake()
	case "up":
		g.Pan(0, keyPan)
		cmd = m.wake()
	case "down":
		g.Pan(0, -keyPan)
		cmd = m.wake()
	case "left":
		g.Pan(keyPan, 0)
		cmd = m.wake()
	case "right":
		g.Pan(-keyPan, 0)
		cmd = m.wake()
	case "f":
		m.plane.Fit(true)
		m.status = "fit"
		cmd = m.wake()
	case "F":
		m.plane.Fit(false)
		m.status = "fit (immediate)"
		cmd = m.wake()
	case "t":
		on := !m.plane.AxisConfig(scale.X).DomainTracking
		m.plane.SetDomainTracking(scale.X, on)
		m.plane.SetDomainTracking(scale.Y, on)
		m.status = fmt.Sprintf("tracking: %v", on)
		cmd = m.wake()
	case "r":
		on := !m.plane.PreserveAspectRatio()
		m.plane.SetPreserveAspectRatio(on)
		m.status = fmt.Sprintf("preserve aspect: %v", on)
		cmd = m.wake()
	case "s":
		m.showState = !m.showState
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.resize()
		cmd = m.wake()
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "i":
		m.inspect()
	case "esc":
		m.inspectPopup = ""
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				cmd = m.loadPath(it.path)
			}
		}
	}
	if m.showSidebar {
		var lc tea.Cmd
		m.l, lc = m.l.Update(msg)
		cmd = tea.Batch(cmd, lc)
	}
	return m, cmd
}

func (m Model) pasteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		m.selPath = ""
		return m, m.setData("pasted WKT", d)
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) mouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lay := m.layout()
	px, py, inside := lay.dot(msg.X, msg.Y)
	g := m.plane.Gestures()

	var cmd tea.Cmd
	switch {
	case msg.Button == tea.MouseButtonWheelUp && inside:
		g.Wheel(px, py, -1)
		cmd = m.wake()
	case msg.Button == tea.MouseButtonWheelDown && inside:
		g.Wheel(px, py, 1)
		cmd = m.wake()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inside:
		g.Press(mousePointer, px, py, m.now())
		m.dragging = true
		m.inspectPopup = ""
		cmd = m.wake()
	case msg.Action == tea.MouseActionMotion && m.dragging:
		g.Move(mousePointer, px, py, m.now())
		cmd = m.wake()
	case msg.Action == tea.MouseActionRelease && m.dragging:
		g.Release(mousePointer, px, py, m.now())
		m.dragging = false
		cmd = m.wake()
	}
	m.updateHover(px, py, inside)

	// Pass messages to list when visible
	if m.showSidebar && !inside {
		var lc tea.Cmd
		m.l, lc = m.l.Update(msg)
		cmd = tea.Batch(cmd, lc)
	}
	return m, cmd
}

// center returns the middle of the map in braille dots.
func (m Model) center() (float64, float64) {
	xr, yr := m.plane.XRange(), m.plane.YRange()
	return (xr.Min + xr.Max) / 2, (yr.Min + yr.Max) / 2
}

func (m *Model) updateHover(px, py float64, inside bool) {
	m.hover = hover{ok: inside}
	if !inside {
		return
	}
	xs, ys := m.plane.XScale(), m.plane.YScale()
	m.hover.x, m.hover.y = xs.Invert(px), ys.Invert(py)
	if m.layer == nil {
		return
	}
	if v, d2, ok := m.layer.Nearest(xs, ys, px, py); ok && d2 <= hoverRadius*hoverRadius {
		m.hover.vertex, m.hover.hasVertex = v, true
	}
}

// inspect describes the vertex nearest to the map center.
func (m *Model) inspect() {
	if m.layer == nil {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	cx, cy := m.center()
	v, _, ok := m.layer.Nearest(m.plane.XScale(), m.plane.YScale(), cx, cy)
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := m.layer.Name
	if m.selPath != "" {
		name = filepath.Base(m.selPath)
	}
	d := m.layer.Data
	m.inspectPopup = strings.Join([]string{
		"name: " + name,
		"path: " + m.selPath,
		"bbox: " + d.BBox.String(),
		"counts: " + d.Counts(),
		fmt.Sprintf("nearest: x=%s y=%s", formatValue(v[0]), formatValue(v[1])),
		"x domain: " + formatDomain(m.plane.XScale().Domain),
		"y domain: " + formatDomain(m.plane.YScale().Domain),
	}, "\n")
	m.status = "inspect popup"
}
