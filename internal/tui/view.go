package tui

import (
	"strings"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"scaleview/internal/scale"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	header := titleStyle.Render(" scaleview ─ continuous-scale terminal viewer ")
	header = lipgloss.NewStyle().Width(lay.width).Padding(0).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		mapView = m.placeTable(m.tbl, lay)
	case m.showState:
		st := m.stateTbl
		st.SetRows(m.stateRows())
		mapView = m.placeTable(st, lay)
	default:
		var canvas string
		if m.pasteMode {
			m.ta.SetWidth(lay.w)
			m.ta.SetHeight(min(lay.h, 12))
			canvas = m.ta.View()
		} else {
			canvas = m.renderMap(lay.w, lay.h)
		}
		mapView = lipgloss.NewStyle().Width(lay.w).Height(lay.h).Render(canvas)
	}

	// inspect popup overlays the area between header and body
	popup := ""
	if m.inspectPopup != "" && !m.showAttrs {
		box := popupStyle.MaxWidth(max(20, min(48, lay.width/2))).Render(m.inspectPopup)
		popup = lipgloss.Place(lay.width, lay.height, lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, m.footer(lay))
	return appStyle.Width(lay.width).Height(m.height).Render(ui)
}

func (m Model) placeTable(t interface{ View() string }, lay layout) string {
	box := boxStyle.MaxWidth(lay.w).Render(t.View())
	return lipgloss.Place(lay.w, lay.h, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) footer(lay layout) string {
	status := dimStyle.Render(" " + m.status + " ")
	if !m.plane.XInRange() || !m.plane.YInRange() {
		status += warnStyle.Render("out of bounds ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())

	coords := ""
	if m.hover.ok {
		coords = dimStyle.Render("  x=" + formatValue(m.hover.x) + " y=" + formatValue(m.hover.y) + "  ")
	}
	spacerW := max(0, lay.width-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	return lipgloss.NewStyle().Width(lay.width).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag/↑↓←→ pan",
		"wheel/+- zoom",
		"f fit",
		"t track",
		"r aspect",
		"s state",
		"Tab files",
		"p paste",
		"a attrs",
		"i inspect",
		"1-3/l layers",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

var stateColumns = []table.Column{
	{Title: "axis", Width: 4},
	{Title: "domain", Width: 26},
	{Title: "phase", Width: 9},
	{Title: "flags", Width: 40},
}

// stateRows reports the live engine state per axis.
func (m Model) stateRows() []table.Row {
	rows := make([]table.Row, 0, 2)
	for _, dir := range []scale.Dir{scale.X, scale.Y} {
		s := m.plane.State(dir)
		d := m.plane.XScale().Domain
		if dir == scale.Y {
			d = m.plane.YScale().Domain
		}
		rows = append(rows, table.Row{dir.String(), formatDomain(d), s.Phase.String(), stateFlags(s, m.plane.AxisConfig(dir))})
	}
	return rows
}

func stateFlags(s scale.State, cfg scale.AxisConfig) string {
	var f []string
	add := func(on bool, name string) {
		if on {
			f = append(f, name)
		}
	}
	add(s.Tweening, "tweening")
	add(s.Interacting, "interacting")
	add(s.Coasting, "coasting")
	add(s.RecentlyInteracted, "recent")
	add(s.Clamped, "clamped")
	add(s.ZoomClamped, "zoom-clamped")
	add(!s.MinInRange, "min-out")
	add(!s.MaxInRange, "max-out")
	add(s.MinChanging, "min-moving")
	add(s.MaxChanging, "max-moving")
	add(cfg.DomainTracking, "tracking")
	return strings.Join(f, " ")
}
