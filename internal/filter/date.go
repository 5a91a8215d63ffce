package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrMissingDate marks a posting that carries no timestamp at all, as
// opposed to one whose timestamp is present but malformed.
var ErrMissingDate = errors.New("posting has no date")

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate normalizes a raw feed timestamp to a UTC instant.
//
// Accepted encodings, in priority order:
//  1. ISO-8601 strings (trailing Z or explicit offset; zoneless assumed UTC)
//  2. string-encoded epoch seconds
//  3. numeric epoch seconds
//
// The caller decides what to do on error; a failed record is skipped, never
// given a sentinel time.
func ParseDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, ErrMissingDate
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, ErrMissingDate
		}
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		//fall back: string-encoded epoch seconds
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable date %q", s)
		}
		return epochToUTC(f)
	case float64:
		return epochToUTC(v)
	case int:
		return epochToUTC(float64(v))
	case int64:
		return epochToUTC(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable numeric date %q", v.String())
		}
		return epochToUTC(f)
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", raw)
	}
}

func epochToUTC(sec float64) (time.Time, error) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return time.Time{}, fmt.Errorf("invalid epoch %v", sec)
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC(), nil
}
