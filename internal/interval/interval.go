// Package interval turns parsed datings into calendar intervals.
package interval

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackzampolin/hierarh/internal/rowparse"
)

// ErrInvalidDate is returned for a dating that names a day or month the
// calendar does not have.
var ErrInvalidDate = errors.New("invalid calendar date")

const (
	isoDate = "2006-01-02"
	epsilon = 1e-9
)

// Interval is a closed range of days.
type Interval struct {
	From time.Time
	To   time.Time
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s..%s", iv.From.Format(isoDate), iv.To.Format(isoDate))
}

// FromISO formats the lower bound as an ISO date.
func (iv Interval) FromISO() string {
	return iv.From.Format(isoDate)
}

// ToISO formats the upper bound as an ISO date.
func (iv Interval) ToISO() string {
	return iv.To.Format(isoDate)
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.From) && !t.After(iv.To)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in a month.
func DaysIn(year, month int) int {
	return date(year, month+1, 0).Day()
}

// Year covers a whole year.
func Year(year int) Interval {
	return Interval{From: date(year, 1, 1), To: date(year, 12, 31)}
}

// Month covers a whole month.
func Month(year, month int) (Interval, error) {
	if month < 1 || month > 12 {
		return Interval{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	return Interval{From: date(year, month, 1), To: date(year, month, DaysIn(year, month))}, nil
}

// Day covers a single day.
func Day(year, month, day int) (Interval, error) {
	if _, err := Month(year, month); err != nil {
		return Interval{}, err
	}
	if day < 1 || day > DaysIn(year, month) {
		return Interval{}, fmt.Errorf("%w: %02d.%02d.%d", ErrInvalidDate, day, month, year)
	}
	d := date(year, month, day)
	return Interval{From: d, To: d}, nil
}

// YearsRange covers whole years from start to end.
func YearsRange(start, end int) Interval {
	return Interval{From: date(start, 1, 1), To: date(end, 12, 31)}
}

// MonthsRange covers whole months of one year.
func MonthsRange(year, start, end int) (Interval, error) {
	from, err := Month(year, start)
	if err != nil {
		return Interval{}, err
	}
	to, err := Month(year, end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{From: from.From, To: to.To}, nil
}

// DaysByProportion covers the part of a month between two fractions of its
// length, 0 <= minK <= maxK <= 1.
func DaysByProportion(year, month int, minK, maxK float64) (Interval, error) {
	if _, err := Month(year, month); err != nil {
		return Interval{}, err
	}
	span := float64(DaysIn(year, month) - 1)
	minDay := int(math.Floor(minK*span+epsilon)) + 1
	maxDay := int(math.Floor(maxK*span+epsilon)) + 1
	return Interval{From: date(year, month, minDay), To: date(year, month, maxDay)}, nil
}

// seasons maps season qualifiers to month ranges.
var seasons = map[string][2]int{
	"весна": {3, 5},
	"лето":  {6, 8},
	"осень": {9, 11},
}

// yearParts and monthParts map qualifiers naming the beginning, middle or
// end of a period to the matching part of a year or month.
var (
	yearParts = map[string][2]int{
		"нач.": {1, 4},
		"сер.": {5, 8},
		"кон.": {9, 12},
	}
	monthParts = map[string][2]float64{
		"нач.": {0, 1.0 / 3},
		"сер.": {1.0 / 3, 2.0 / 3},
		"кон.": {2.0 / 3, 1},
	}
)

// FromDating returns the interval a dating denotes. A season or a
// beginning/middle/end qualifier narrows a year or month dating; other
// qualifiers ("около", "не ранее", ...) leave the interval as written.
func FromDating(d rowparse.Dating) (Interval, error) {
	switch {
	case d.Year == 0:
		return Interval{}, fmt.Errorf("%w: no year in %q", ErrInvalidDate, d.Text)
	case d.Day != 0:
		return Day(d.Year, d.Month, d.Day)
	case d.Month != 0:
		if k, ok := monthParts[d.Qualifier]; ok {
			return DaysByProportion(d.Year, d.Month, k[0], k[1])
		}
		return Month(d.Year, d.Month)
	}

	if m, ok := seasons[d.Qualifier]; ok {
		return MonthsRange(d.Year, m[0], m[1])
	}
	if m, ok := yearParts[d.Qualifier]; ok {
		return MonthsRange(d.Year, m[0], m[1])
	}
	return Year(d.Year), nil
}
