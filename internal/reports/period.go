package reports

import (
	"fmt"
	"time"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

// Period modes accepted by the report endpoints.
const (
	ModeMonth  = "month"
	ModeYear   = "year"
	ModeAll    = "all"
	ModeCustom = "custom"
)

const dateLayout = "2006-01-02"

// Interval is a closed date range. A nil bound means unbounded on that side;
// queries must skip the filter for nil bounds rather than substitute infinities.
type Interval struct {
	Start *time.Time
	End   *time.Time
}

// Bounded reports whether both ends of the interval are set.
func (iv Interval) Bounded() bool {
	return iv.Start != nil && iv.End != nil
}

// Period is a resolved interval together with the mode that produced it.
type Period struct {
	Mode string
	Interval
}

// ResolvePeriod turns a period selector into a concrete interval relative to now.
// Empty selector defaults to month. Custom start/end are calendar dates; either
// side may be absent independently.
func ResolvePeriod(selector, start, end string, now time.Time) (Period, error) {
	if selector == "" {
		selector = ModeMonth
	}
	switch selector {
	case ModeAll:
		return Period{Mode: ModeAll}, nil
	case ModeCustom:
		p := Period{Mode: ModeCustom}
		if start != "" {
			t, err := time.ParseInLocation(dateLayout, start, now.Location())
			if err != nil {
				return Period{}, fmt.Errorf("%w: start date %q", shared.ErrInvalidPeriod, start)
			}
			s := startOfDay(t)
			p.Start = &s
		}
		if end != "" {
			t, err := time.ParseInLocation(dateLayout, end, now.Location())
			if err != nil {
				return Period{}, fmt.Errorf("%w: end date %q", shared.ErrInvalidPeriod, end)
			}
			e := endOfDay(t)
			p.End = &e
		}
		return p, nil
	case ModeYear:
		s := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		e := endOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location()))
		return Period{Mode: ModeYear, Interval: Interval{Start: &s, End: &e}}, nil
	case ModeMonth:
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		e := endOfDay(s.AddDate(0, 1, -1))
		return Period{Mode: ModeMonth, Interval: Interval{Start: &s, End: &e}}, nil
	default:
		return Period{}, fmt.Errorf("%w: unknown mode %q", shared.ErrInvalidPeriod, selector)
	}
}

// PreviousRange derives the comparison interval immediately preceding p.
// Year mode shifts both bounds back one calendar year so the same calendar
// dates line up; month and custom modes keep the same length in days, ending
// the day before the current start. Unbounded periods have no previous range.
func PreviousRange(p Period) *Interval {
	if p.Start == nil || p.End == nil {
		return nil
	}
	if p.Mode == ModeYear {
		s := p.Start.AddDate(-1, 0, 0)
		e := p.End.AddDate(-1, 0, 0)
		return &Interval{Start: &s, End: &e}
	}
	days := inclusiveDays(*p.Start, *p.End)
	prevEnd := endOfDay(p.Start.AddDate(0, 0, -1))
	prevStart := startOfDay(prevEnd.AddDate(0, 0, -(days - 1)))
	return &Interval{Start: &prevStart, End: &prevEnd}
}

// ShiftYears returns the interval moved by the given number of calendar years.
func ShiftYears(iv Interval, years int) Interval {
	out := Interval{}
	if iv.Start != nil {
		s := iv.Start.AddDate(years, 0, 0)
		out.Start = &s
	}
	if iv.End != nil {
		e := iv.End.AddDate(years, 0, 0)
		out.End = &e
	}
	return out
}

// inclusiveDays counts calendar days covered by [start, end], both included.
func inclusiveDays(start, end time.Time) int {
	s := startOfDay(start)
	e := startOfDay(end)
	return int(e.Sub(s).Hours()/24) + 1
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// FormatDate renders an optional bound as YYYY-MM-DD for response payloads.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
