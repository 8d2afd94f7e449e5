package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// floatingLayout writes a zoneless timestamp back in the form it was read.
const floatingLayout = "2006-01-02T15:04:05.999999999"

// dateLayouts are the timestamp shapes the backend emits: isoformat with and
// without a zone or fraction, bare dates, and the RFC 1123 form jsonify uses
// for raw datetimes.
var dateLayouts = []struct {
	layout   string
	floating bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05.999999", true},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02", true},
	{time.RFC1123, false},
	{time.RFC1123Z, false},
}

// Date is a nullable backend timestamp. The zero value means null.
//
// A floating date was sent without a zone. Its wall clock is kept in the
// embedded Time as UTC and belongs to whatever location reads it.
type Date struct {
	time.Time
	floating bool
}

// NewDate wraps t as a Date.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate parses any timestamp shape the backend produces.
// Timestamps without a zone come back floating; see At.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return Date{Time: t, floating: l.floating}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// Valid reports whether the date is non-null.
func (d Date) Valid() bool {
	return !d.IsZero()
}

// Floating reports whether the date was given without a zone.
func (d Date) Floating() bool {
	return d.floating
}

// At returns the date as an instant in loc. A floating date keeps its wall
// clock, so "2025-01-02" is midnight of Jan 2 in loc; a zoned date is
// converted.
func (d Date) At(loc *time.Location) time.Time {
	if !d.floating {
		return d.Time.In(loc)
	}
	y, m, day := d.Time.Date()
	h, mi, sec := d.Time.Clock()
	return time.Date(y, m, day, h, mi, sec, d.Time.Nanosecond(), loc)
}

// UnmarshalJSON accepts null, "" or any supported timestamp string.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes null for the zero date, a zoneless timestamp for a
// floating date and RFC 3339 otherwise.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// String renders the date in the form MarshalJSON writes, or "" when null.
func (d Date) String() string {
	if !d.Valid() {
		return ""
	}
	if d.floating {
		return d.Time.Format(floatingLayout)
	}
	return d.Time.Format(time.RFC3339)
}

// Day is a calendar date sent to form-backed endpoints as YYYY-MM-DD.
type Day struct {
	time.Time
}

// MarshalJSON writes the date portion only.
func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}
