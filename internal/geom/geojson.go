package geom

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

type position []float64

func (p position) pt() ([2]float64, bool) {
	if len(p) < 2 {
		return [2]float64{}, false
	}
	return [2]float64{p[0], p[1]}, true
}

func line(ps []position) [][2]float64 {
	out := make([][2]float64, 0, len(ps))
	for _, p := range ps {
		if pt, ok := p.pt(); ok {
			out = append(out, pt)
		}
	}
	return out
}

func polygon(rings [][]position) [][][2]float64 {
	out := make([][][2]float64, 0, len(rings))
	for _, r := range rings {
		if ls := line(r); len(ls) > 0 {
			out = append(out, ls)
		}
	}
	return out
}

// geoObject is any GeoJSON object: geometry, feature or collection.
type geoObject struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometry    *geoObject      `json:"geometry"`
	Geometries  []geoObject     `json:"geometries"`
	Features    []geoObject     `json:"features"`
	Properties  map[string]any  `json:"properties"`
}

// ReadGeoJSON reads a Feature, FeatureCollection or bare geometry, including
// GeometryCollections. Feature properties become attributes.
func ReadGeoJSON(r io.Reader) (Data, error) {
	var root geoObject
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return Data{}, fmt.Errorf("geojson: %w", err)
	}
	var (
		d     Data
		props []map[string]any
	)
	switch root.Type {
	case "FeatureCollection":
		for _, f := range root.Features {
			if f.Geometry != nil {
				if err := addGeometry(&d, *f.Geometry); err != nil {
					return Data{}, err
				}
			}
			props = append(props, f.Properties)
		}
	case "Feature":
		if root.Geometry != nil {
			if err := addGeometry(&d, *root.Geometry); err != nil {
				return Data{}, err
			}
		}
		props = append(props, root.Properties)
	case "":
		return Data{}, fmt.Errorf("geojson: missing type: %w", ErrUnsupported)
	default:
		if err := addGeometry(&d, root); err != nil {
			return Data{}, err
		}
	}
	if d.Empty() {
		return Data{}, fmt.Errorf("geojson: %w", ErrEmpty)
	}
	d.Attrs = propertyTable(props)
	return d, nil
}

func addGeometry(d *Data, g geoObject) error {
	decode := func(v any) error {
		if err := json.Unmarshal(g.Coordinates, v); err != nil {
			return fmt.Errorf("geojson %s: %w", g.Type, err)
		}
		return nil
	}
	switch g.Type {
	case "Point":
		var p position
		if err := decode(&p); err != nil {
			return err
		}
		if pt, ok := p.pt(); ok {
			d.AddPoint(pt)
		}
	case "MultiPoint":
		var ps []position
		if err := decode(&ps); err != nil {
			return err
		}
		for _, pt := range line(ps) {
			d.AddPoint(pt)
		}
	case "LineString":
		var ps []position
		if err := decode(&ps); err != nil {
			return err
		}
		d.AddLine(line(ps))
	case "MultiLineString":
		var ls [][]position
		if err := decode(&ls); err != nil {
			return err
		}
		for _, ps := range ls {
			d.AddLine(line(ps))
		}
	case "Polygon":
		var rings [][]position
		if err := decode(&rings); err != nil {
			return err
		}
		d.AddPolygon(polygon(rings))
	case "MultiPolygon":
		var polys [][][]position
		if err := decode(&polys); err != nil {
			return err
		}
		for _, rings := range polys {
			d.AddPolygon(polygon(rings))
		}
	case "GeometryCollection":
		for _, sub := range g.Geometries {
			if err := addGeometry(d, sub); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("geojson type %q: %w", g.Type, ErrUnsupported)
	}
	return nil
}

// propertyTable unions the property keys of all features, sorted.
func propertyTable(props []map[string]any) Attributes {
	seen := map[string]bool{}
	var cols []string
	for _, pm := range props {
		for k := range pm {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	if len(cols) == 0 {
		return Attributes{}
	}
	sort.Strings(cols)
	rows := make([][]string, 0, len(props))
	for _, pm := range props {
		vals := make([]string, len(cols))
		for i, k := range cols {
			vals[i] = formatProperty(pm[k])
		}
		rows = append(rows, vals)
	}
	return Attributes{Columns: cols, Rows: rows}
}

func formatProperty(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprint(t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
