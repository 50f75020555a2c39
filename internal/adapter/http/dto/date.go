package dto

import (
	"fmt"
	"strings"
	"time"
)

// Date is a request timestamp that accepts both RFC 3339 values and plain
// YYYY-MM-DD dates. Clients that only track calendar days send the short form.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a quoted RFC 3339 timestamp or YYYY-MM-DD date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}

	t, err := ParseFlexibleTime(s)
	if err != nil {
		return err
	}

	d.Time = t
	return nil
}

// MarshalJSON renders the timestamp in RFC 3339.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.RFC3339) + `"`), nil
}

// TimePtr returns the underlying time, or nil when the date was absent.
func (d *Date) TimePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// ParseFlexibleTime parses an RFC 3339 timestamp or a YYYY-MM-DD date.
func ParseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", s)
}
