package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

// tuples parses "lon,lat[,alt]" tuples separated by whitespace; altitude is
// dropped.
func (c kmlCoords) tuples() [][2]float64 {
	var out [][2]float64
	for _, tuple := range strings.Fields(c.Coordinates) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(vals[0], 64)
		lat, err2 := strconv.ParseFloat(vals[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{lon, lat})
	}
	return out
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlGeometry struct {
	Points   []kmlCoords   `xml:"Point"`
	Lines    []kmlCoords   `xml:"LineString"`
	Polygons []kmlPolygon  `xml:"Polygon"`
	Multi    []kmlGeometry `xml:"MultiGeometry"`
}

func (g kmlGeometry) addTo(d *Data) {
	for _, p := range g.Points {
		for _, pt := range p.tuples() {
			d.AddPoint(pt)
		}
	}
	for _, l := range g.Lines {
		d.AddLine(l.tuples())
	}
	for _, p := range g.Polygons {
		poly := [][][2]float64{p.Outer.tuples()}
		for _, in := range p.Inner {
			poly = append(poly, in.tuples())
		}
		d.AddPolygon(poly)
	}
	for _, m := range g.Multi {
		m.addTo(d)
	}
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	kmlGeometry
}

// ReadKML extracts Placemark geometries at any depth of the document:
// points, line strings, polygons and multi-geometries. Placemark names and
// descriptions become attributes.
func ReadKML(r io.Reader) (Data, error) {
	d := Data{Attrs: Attributes{Columns: []string{"name", "description"}}}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Data{}, fmt.Errorf("kml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Data{}, fmt.Errorf("kml placemark: %w", err)
		}
		pm.addTo(&d)
		d.Attrs.Rows = append(d.Attrs.Rows, []string{
			strings.TrimSpace(pm.Name),
			strings.TrimSpace(pm.Description),
		})
	}
	if d.Empty() {
		return Data{}, fmt.Errorf("kml: %w", ErrEmpty)
	}
	return d, nil
}
