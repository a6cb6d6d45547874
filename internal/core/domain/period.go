package domain

import (
	"fmt"
	"time"
)

const periodLayout = "2006-01"

// Period is a billing cycle (calendar month). It is used both as the fee
// generation stamp on a student and as the aggregation window of a payout.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod builds a period, normalising out-of-range months.
func NewPeriod(year int, month time.Month) Period {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Year: t.Year(), Month: t.Month()}
}

// PeriodOf returns the period containing t, evaluated in t's location.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "YYYY-MM" stamp.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q is not a YYYY-MM period", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// IsZero reports whether the period is unset (a student that was never billed).
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

func (p Period) String() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Compare returns -1, 0 or +1. The zero period sorts before every real period.
func (p Period) Compare(o Period) int {
	switch {
	case p.Year < o.Year:
		return -1
	case p.Year > o.Year:
		return 1
	case p.Month < o.Month:
		return -1
	case p.Month > o.Month:
		return 1
	}
	return 0
}

// Before reports whether p is strictly earlier than o.
func (p Period) Before(o Period) bool { return p.Compare(o) < 0 }

// Next returns the following month.
func (p Period) Next() Period { return NewPeriod(p.Year, p.Month+1) }

// Start is the first instant of the period in loc.
func (p Period) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// End is the first instant of the following period (exclusive bound).
func (p Period) End(loc *time.Location) time.Time {
	return p.Next().Start(loc)
}

// Contains reports whether t falls within [Start, End).
func (p Period) Contains(t time.Time, loc *time.Location) bool {
	return !t.Before(p.Start(loc)) && t.Before(p.End(loc))
}

// DueDate returns the end of the given day of the period. Days past the end
// of a short month clamp to its last day.
func (p Period) DueDate(day int, loc *time.Location) time.Time {
	if day < 1 {
		day = 1
	}
	lastDay := p.End(loc).AddDate(0, 0, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, p.Start(loc).Location()).AddDate(0, 0, 1)
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value yields the zero period.
func (p *Period) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = Period{}
		return nil
	}
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
