package tui

import (
	"path/filepath"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

const maxColW = 24

// refreshAttrs rebuilds the table from the current dataset's attributes.
func (m *Model) refreshAttrs() {
	cols, rows := m.attributes()
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		// pad or truncate to the column count
		cells := make([]string, len(tcols))
		cells[0] = strconv.Itoa(i + 1)
		copy(cells[1:], r)
		trows = append(trows, table.Row(cells))
	}
	// clear rows first so the table never renders rows wider than its columns
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.tbl.SetHeight(min(max(3, m.layout().h-4), 20))
}

// attributes returns the dataset's table, or a one-row summary when the
// source format carries none.
func (m *Model) attributes() ([]string, [][]string) {
	if m.layer == nil {
		return nil, nil
	}
	d := m.layer.Data
	if len(d.Attrs.Columns) > 0 {
		return d.Attrs.Columns, d.Attrs.Rows
	}
	name := m.layer.Name
	if m.selPath != "" {
		name = filepath.Base(m.selPath)
	}
	cols := []string{"name", "bbox", "points", "lines", "polygons"}
	vals := []string{name, d.BBox.String(), strconv.Itoa(len(d.Points)), strconv.Itoa(len(d.Lines)), strconv.Itoa(len(d.Polygons))}
	return cols, [][]string{vals}
}
