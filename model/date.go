package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates (UTC).
func ParseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", s)
}

// Date is a JSON time that also decodes date-only strings.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, _, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// ParseDateRange parses optional inclusive bounds. A date-only upper bound
// covers the whole of that day.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var lo, hi *time.Time
	if from != "" {
		t, _, err := ParseDate(from)
		if err != nil {
			return nil, nil, NewValidationError("Invalid 'from' date: use YYYY-MM-DD or RFC3339")
		}
		lo = &t
	}
	if to != "" {
		t, dateOnly, err := ParseDate(to)
		if err != nil {
			return nil, nil, NewValidationError("Invalid 'to' date: use YYYY-MM-DD or RFC3339")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		hi = &t
	}
	return lo, hi, nil
}
