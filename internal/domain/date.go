package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with ISO-8601 (YYYY-MM-DD) JSON and storage
// representation. Time-of-day and timezone are deliberately absent: the
// backing sheet stores plain date strings.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in the local timezone.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("domain.ParseDate: %w", err)
	}
	return Date{t: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) After(other Date) bool { return d.t.After(other.t) }

func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// DaysSince returns the number of whole days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
