package geom

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".csv", ".kml", ".wkt"}

func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads a geometry file, picking the reader by extension.
func Load(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return ReadGeoJSON(f)
	case ".csv":
		return ReadCSV(f)
	case ".kml":
		return ReadKML(f)
	case ".wkt":
		b, err := io.ReadAll(f)
		if err != nil {
			return Data{}, err
		}
		return ParseWKT(string(b))
	default:
		return Data{}, fmt.Errorf("file %s: %w", filepath.Base(path), ErrUnsupported)
	}
}
