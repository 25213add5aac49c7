package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseWKT parses POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON
// and MULTIPOLYGON text, optionally prefixed by an SRID and with Z/M
// ordinates (which are dropped).
func ParseWKT(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if i := strings.Index(s, ";"); i >= 0 && strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		s = strings.TrimSpace(s[i+1:])
	}
	if s == "" {
		return Data{}, fmt.Errorf("wkt: %w", ErrEmpty)
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		if strings.HasSuffix(strings.ToUpper(s), "EMPTY") {
			return Data{}, fmt.Errorf("wkt: %w", ErrEmpty)
		}
		return Data{}, fmt.Errorf("wkt: unbalanced parentheses: %w", ErrUnsupported)
	}
	tag := strings.Fields(strings.ToUpper(s[:i]))
	if len(tag) == 0 {
		return Data{}, fmt.Errorf("wkt: missing type: %w", ErrUnsupported)
	}
	body := s[i+1 : j]

	var d Data
	switch tag[0] {
	case "POINT", "MULTIPOINT":
		flat := strings.NewReplacer("(", " ", ")", " ").Replace(body)
		for _, pt := range tuples(flat) {
			d.AddPoint(pt)
		}
	case "LINESTRING":
		d.AddLine(tuples(body))
	case "MULTILINESTRING":
		groups, err := splitGroups(body)
		if err != nil {
			return Data{}, err
		}
		for _, g := range groups {
			d.AddLine(tuples(g))
		}
	case "POLYGON":
		poly, err := rings(body)
		if err != nil {
			return Data{}, err
		}
		d.AddPolygon(poly)
	case "MULTIPOLYGON":
		groups, err := splitGroups(body)
		if err != nil {
			return Data{}, err
		}
		for _, g := range groups {
			poly, err := rings(g)
			if err != nil {
				return Data{}, err
			}
			d.AddPolygon(poly)
		}
	default:
		return Data{}, fmt.Errorf("wkt type %q: %w", tag[0], ErrUnsupported)
	}
	if d.Empty() {
		return Data{}, fmt.Errorf("wkt: no coordinates parsed: %w", ErrEmpty)
	}
	return d, nil
}

func rings(body string) ([][][2]float64, error) {
	groups, err := splitGroups(body)
	if err != nil {
		return nil, err
	}
	var poly [][][2]float64
	for _, g := range groups {
		if r := tuples(g); len(r) > 0 {
			poly = append(poly, r)
		}
	}
	return poly, nil
}

// splitGroups returns the contents of the top-level parenthesized groups of
// s, so "(a), (b)" yields "a" and "b".
func splitGroups(s string) ([]string, error) {
	var (
		out   []string
		depth int
		start int
	)
	for i, ch := range s {
		switch ch {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("wkt: unbalanced parentheses: %w", ErrUnsupported)
			}
			if depth == 0 {
				out = append(out, s[start:i])
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("wkt: unbalanced parentheses: %w", ErrUnsupported)
	}
	return out, nil
}

// tuples parses comma-separated "x y [z [m]]" tuples.
func tuples(block string) [][2]float64 {
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(tup)
		if len(parts) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}
