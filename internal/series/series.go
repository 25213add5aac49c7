// Package series loads time series and places them on temporal planes.
package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tebeka/strftime"
)

var (
	ErrNoSamples = errors.New("series: no samples")
	ErrNoColumns = errors.New("series: time/value columns not found")
)

// Series is a time-ordered sequence of samples.
type Series struct {
	Name   string
	Times  []time.Time
	Values []float64
}

func (s *Series) Len() int { return len(s.Times) }

// Append adds a sample; samples older than the last one are rejected.
func (s *Series) Append(t time.Time, v float64) error {
	if n := len(s.Times); n > 0 && t.Before(s.Times[n-1]) {
		return fmt.Errorf("series %s: sample at %s is older than %s", s.Name, t.Format(time.RFC3339), s.Times[n-1].Format(time.RFC3339))
	}
	s.Times = append(s.Times, t)
	s.Values = append(s.Values, v)
	return nil
}

func (s *Series) Less(i, j int) bool { return s.Times[i].Before(s.Times[j]) }

func (s *Series) Swap(i, j int) {
	s.Times[i], s.Times[j] = s.Times[j], s.Times[i]
	s.Values[i], s.Values[j] = s.Values[j], s.Values[i]
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 and common date-time layouts (as UTC), or
// seconds since the Unix epoch.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return time.Time{}, fmt.Errorf("series: unrecognized time %q", s)
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), nil
}

// ReadCSV reads a CSV with a time|timestamp|date column and a value
// column; without a value|v|y header the first other column is used. Rows
// that do not parse are skipped and the result is sorted by time.
func ReadCSV(r io.Reader) (*Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("series csv: %w", err)
	}
	if len(recs) == 0 {
		return nil, ErrNoSamples
	}
	header := recs[0]
	idxT, idxV := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "time", "timestamp", "date", "t":
			if idxT == -1 {
				idxT = i
			}
		case "value", "v", "y":
			if idxV == -1 {
				idxV = i
			}
		}
	}
	if idxT == -1 {
		return nil, ErrNoColumns
	}
	if idxV == -1 {
		for i := range header {
			if i != idxT {
				idxV = i
				break
			}
		}
	}
	if idxV == -1 {
		return nil, ErrNoColumns
	}

	s := &Series{Name: strings.TrimSpace(header[idxV])}
	for _, row := range recs[1:] {
		if idxT >= len(row) || idxV >= len(row) {
			continue
		}
		t, err := ParseTime(row[idxT])
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[idxV]), 64)
		if err != nil {
			continue
		}
		s.Times = append(s.Times, t)
		s.Values = append(s.Values, v)
	}
	if s.Len() == 0 {
		return nil, ErrNoSamples
	}
	sort.Stable(s)
	return s, nil
}

// Label formats t with a strftime pattern, falling back to RFC 3339.
func Label(format string, t time.Time) string {
	out, err := strftime.Format(format, t)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	return out
}
