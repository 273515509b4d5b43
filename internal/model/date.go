package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date. It is stored in `date` columns and rendered in
// JSON as YYYY-MM-DD.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	dateLayout,
	"2006-1-2",
	"02-01-2006",
	"2006/01/02",
	"2006/1/2",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
}

// ParseDate parses s using the accepted date layouts.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewDate(t), nil
		}
	}

	return Date{}, fmt.Errorf("cannot parse date: %s", s)
}

// maxTimestamp bounds millisecond timestamps to ±100,000,000 days around
// the epoch.
const maxTimestamp = 8.64e15

var timestampPattern = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?$`)

// DateFromValue reads a date from a decoded JSON value. Strings are parsed
// with the accepted layouts unless they are purely numeric, in which case
// they count as a timestamp like JSON numbers do. Timestamps are
// milliseconds since the Unix epoch.
func DateFromValue(value any) (Date, error) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if timestampPattern.MatchString(s) {
			ms, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Date{}, fmt.Errorf("cannot parse timestamp: %s", v)
			}
			return dateFromMillis(ms)
		}
		return ParseDate(v)
	case float64:
		return dateFromMillis(v)
	case json.Number:
		ms, err := v.Float64()
		if err != nil {
			return Date{}, fmt.Errorf("cannot parse timestamp: %s", v)
		}
		return dateFromMillis(ms)
	case int:
		return dateFromMillis(float64(v))
	case int64:
		return dateFromMillis(float64(v))
	default:
		return Date{}, fmt.Errorf("cannot read a date from %T", value)
	}
}

func dateFromMillis(ms float64) (Date, error) {
	if ms < -maxTimestamp || ms > maxTimestamp {
		return Date{}, fmt.Errorf("timestamp out of range: %v", ms)
	}
	return NewDate(time.UnixMilli(int64(ms)).UTC()), nil
}

// NewDate truncates t to midnight UTC of its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date format (string expected): %w", err)
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}

	return json.Marshal(d.String())
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into model.Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Time.Format(dateLayout), nil
}
