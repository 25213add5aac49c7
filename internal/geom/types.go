package geom

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty       = errors.New("geom: no geometries found")
	ErrUnsupported = errors.New("geom: unsupported input")
	ErrNoColumns   = errors.New("geom: coordinate columns not found")
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) String() string {
	return fmt.Sprintf("[%.5f, %.5f, %.5f, %.5f]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// bounds accumulates a BBox over a stream of positions.
type bounds struct {
	box BBox
	ok  bool
}

func (b *bounds) add(pt [2]float64) {
	if !b.ok {
		b.box = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
		b.ok = true
		return
	}
	b.box.MinX = min(b.box.MinX, pt[0])
	b.box.MinY = min(b.box.MinY, pt[1])
	b.box.MaxX = max(b.box.MaxX, pt[0])
	b.box.MaxY = max(b.box.MaxY, pt[1])
}

// Attributes is a per-feature property table.
type Attributes struct {
	Columns []string
	Rows    [][]string
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
	Attrs    Attributes

	bounds bounds
}

func (d *Data) AddPoint(pt [2]float64) {
	d.Points = append(d.Points, pt)
	d.extend(pt)
}

func (d *Data) AddLine(ls [][2]float64) {
	if len(ls) == 0 {
		return
	}
	d.Lines = append(d.Lines, ls)
	for _, pt := range ls {
		d.extend(pt)
	}
}

func (d *Data) AddPolygon(poly [][][2]float64) {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return
	}
	d.Polygons = append(d.Polygons, poly)
	for _, ring := range poly {
		for _, pt := range ring {
			d.extend(pt)
		}
	}
}

func (d *Data) extend(pt [2]float64) {
	d.bounds.add(pt)
	d.BBox = d.bounds.box
}

func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

func (d Data) Counts() string {
	return fmt.Sprintf("pts=%d ls=%d poly=%d", len(d.Points), len(d.Lines), len(d.Polygons))
}

// Kinds selects which geometry kinds take part in an operation.
type Kinds struct {
	Points   bool
	Lines    bool
	Polygons bool
}

var AllKinds = Kinds{Points: true, Lines: true, Polygons: true}

func (k Kinds) Any() bool { return k.Points || k.Lines || k.Polygons }

// Each calls fn for every vertex of the selected kinds.
func (d Data) Each(k Kinds, fn func(pt [2]float64)) {
	if k.Points {
		for _, pt := range d.Points {
			fn(pt)
		}
	}
	if k.Lines {
		for _, ls := range d.Lines {
			for _, pt := range ls {
				fn(pt)
			}
		}
	}
	if k.Polygons {
		for _, poly := range d.Polygons {
			for _, ring := range poly {
				for _, pt := range ring {
					fn(pt)
				}
			}
		}
	}
}

// Bounds is the bbox of the selected kinds; ok is false when none has
// vertices.
func (d Data) Bounds(k Kinds) (BBox, bool) {
	if k == AllKinds {
		return d.BBox, !d.Empty()
	}
	var b bounds
	d.Each(k, b.add)
	return b.box, b.ok
}
