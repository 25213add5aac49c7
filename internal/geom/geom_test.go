package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "name,Latitude,lon\nA,10,20\nB, 12.5 ,-3\nbad,x,1\n"
	d, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{20, 10}, {-3, 12.5}}, d.Points)
	assert.Equal(t, BBox{MinX: -3, MinY: 10, MaxX: 20, MaxY: 12.5}, d.BBox)
	assert.Equal(t, []string{"name", "Latitude", "lon"}, d.Attrs.Columns)
	require.Len(t, d.Attrs.Rows, 2)
	assert.Equal(t, "B", d.Attrs.Rows[1][0])
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n"))
	assert.ErrorIs(t, err, ErrNoColumns)
	_, err = ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = ReadCSV(strings.NewReader("x,y\nfoo,bar\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

const featureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "p", "pop": 1200},
     "geometry": {"type": "Point", "coordinates": [1, 2, 30]}},
    {"type": "Feature", "properties": {"name": "road", "paved": true},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [4, 1]]}},
    {"type": "Feature", "properties": null,
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[-1, -1], [1, -1], [1, 1], [-1, -1]]]]}},
    {"type": "Feature", "properties": {"tags": ["a"]},
     "geometry": {"type": "GeometryCollection", "geometries": [
       {"type": "MultiPoint", "coordinates": [[5, 5], [6, 7]]}
     ]}}
  ]
}`

func TestReadGeoJSON(t *testing.T) {
	d, err := ReadGeoJSON(strings.NewReader(featureCollection))
	require.NoError(t, err)
	assert.Len(t, d.Points, 3)
	assert.Len(t, d.Lines, 1)
	assert.Len(t, d.Polygons, 1)
	assert.Equal(t, BBox{MinX: -1, MinY: -1, MaxX: 6, MaxY: 7}, d.BBox)

	assert.Equal(t, []string{"name", "paved", "pop", "tags"}, d.Attrs.Columns)
	require.Len(t, d.Attrs.Rows, 4)
	assert.Equal(t, []string{"p", "", "1200", ""}, d.Attrs.Rows[0])
	assert.Equal(t, []string{"road", "true", "", ""}, d.Attrs.Rows[1])
	assert.Equal(t, `["a"]`, d.Attrs.Rows[3][3])
}

func TestReadGeoJSONBareGeometry(t *testing.T) {
	d, err := ReadGeoJSON(strings.NewReader(`{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,0]],[[0.5,0.5],[1,0.5],[1,1],[0.5,0.5]]]}`))
	require.NoError(t, err)
	require.Len(t, d.Polygons, 1)
	assert.Len(t, d.Polygons[0], 2)
	assert.Empty(t, d.Attrs.Columns)

	_, err = ReadGeoJSON(strings.NewReader(`{"type":"Tin","coordinates":[]}`))
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = ReadGeoJSON(strings.NewReader(`{"coordinates":[]}`))
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = ReadGeoJSON(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
	assert.ErrorIs(t, err, ErrEmpty)
}

const kmlDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Folder>
      <Placemark>
        <name>Summit</name>
        <Point><coordinates>8.5,47.3,1200</coordinates></Point>
      </Placemark>
      <Placemark>
        <name>Trail</name>
        <description>loop</description>
        <MultiGeometry>
          <LineString><coordinates>8.0,47.0 8.2,47.1</coordinates></LineString>
          <Polygon>
            <outerBoundaryIs><LinearRing><coordinates>7,46 9,46 9,48 7,46</coordinates></LinearRing></outerBoundaryIs>
          </Polygon>
        </MultiGeometry>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func TestReadKML(t *testing.T) {
	d, err := ReadKML(strings.NewReader(kmlDoc))
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{8.5, 47.3}}, d.Points)
	assert.Len(t, d.Lines, 1)
	assert.Len(t, d.Polygons, 1)
	assert.Equal(t, BBox{MinX: 7, MinY: 46, MaxX: 9, MaxY: 48}, d.BBox)
	assert.Equal(t, [][]string{{"Summit", ""}, {"Trail", "loop"}}, d.Attrs.Rows)

	_, err = ReadKML(strings.NewReader(`<kml><Document/></kml>`))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseWKT(t *testing.T) {
	tests := []struct {
		in                  string
		points, lines, poly int
		rings               int
	}{
		{"POINT (30 10)", 1, 0, 0, 0},
		{"POINT Z (30 10 5)", 1, 0, 0, 0},
		{"MULTIPOINT ((10 40), (40 30))", 2, 0, 0, 0},
		{"multipoint (10 40, 40 30, 20 20)", 3, 0, 0, 0},
		{"LINESTRING (30 10, 10 30, 40 40)", 0, 1, 0, 0},
		{"MULTILINESTRING ((10 10, 20 20), (40 40, 30 30, 40 20))", 0, 2, 0, 0},
		{"POLYGON ((35 10, 45 45, 15 40, 35 10), (20 30, 35 35, 30 20, 20 30))", 0, 0, 1, 2},
		{"SRID=4326;MULTIPOLYGON (((30 20, 45 40, 10 40, 30 20)), ((15 5, 40 10, 10 20, 15 5)))", 0, 0, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseWKT(tt.in)
			require.NoError(t, err)
			assert.Len(t, d.Points, tt.points)
			assert.Len(t, d.Lines, tt.lines)
			assert.Len(t, d.Polygons, tt.poly)
			if tt.poly > 0 {
				assert.Len(t, d.Polygons[0], tt.rings)
			}
		})
	}

	d, err := ParseWKT("LINESTRING (30 10, 10 30, 40 40)")
	require.NoError(t, err)
	assert.Equal(t, BBox{MinX: 10, MinY: 10, MaxX: 40, MaxY: 40}, d.BBox)

	for _, bad := range []string{"", "POINT EMPTY", "CIRCLE (1 2)", "POLYGON ((1 2, 3 4)", "POINT (a b)"} {
		_, err := ParseWKT(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.wkt")
	require.NoError(t, os.WriteFile(path, []byte("POINT (1 2)"), 0o644))
	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{1, 2}}, d.Points)

	assert.True(t, Supported("a.GeoJSON"))
	assert.False(t, Supported("a.shp"))
	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestDataBoundsByKind(t *testing.T) {
	var d Data
	d.AddPoint([2]float64{100, 100})
	d.AddLine([][2]float64{{0, 0}, {1, 2}})
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}, d.BBox)

	b, ok := d.Bounds(Kinds{Lines: true})
	require.True(t, ok)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 2}, b)
	_, ok = d.Bounds(Kinds{Polygons: true})
	assert.False(t, ok)
	assert.Equal(t, "pts=1 ls=1 poly=0", d.Counts())
}
