package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Period is the size of one report bucket.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

var ErrInvalidPeriod = errors.New("invalid period")

// MaxRange bounds the number of buckets in one report.
const MaxRange = 1000

var ErrRangeTooLarge = fmt.Errorf("range must be at most %d", MaxRange)

const labelDate = "2006-01-02"

// ParsePeriod accepts day, week or month in any case. Blank means day.
func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// DefaultRange is the bucket count used when the caller asks for none.
func (p Period) DefaultRange() int {
	switch p {
	case PeriodWeek:
		return 4
	case PeriodMonth:
		return 6
	default:
		return 7
	}
}

// Window is one bucket's half-open time range [Start, End) in UTC.
type Window struct {
	Label string
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Windows returns n buckets, oldest first, the last one containing now.
// n <= 0 selects the period's default range; n above MaxRange is rejected.
func Windows(p Period, n int, now time.Time) ([]Window, error) {
	if n <= 0 {
		n = p.DefaultRange()
	}
	if n > MaxRange {
		return nil, ErrRangeTooLarge
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windows := make([]Window, 0, n)
	for i := n - 1; i >= 0; i-- {
		var w Window
		switch p {
		case PeriodDay:
			w = dayWindow(today.AddDate(0, 0, -i))
		case PeriodWeek:
			w = weekWindow(today.AddDate(0, 0, -7*i))
		case PeriodMonth:
			w = monthWindow(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0))
		default:
			return nil, ErrInvalidPeriod
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func dayWindow(day time.Time) Window {
	return Window{Label: day.Format(labelDate), Start: day, End: day.AddDate(0, 0, 1)}
}

// weekWindow normalizes day back to the Monday of its week.
func weekWindow(day time.Time) Window {
	monday := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	sunday := monday.AddDate(0, 0, 6)
	return Window{
		Label: monday.Format(labelDate) + " to " + sunday.Format(labelDate),
		Start: monday,
		End:   monday.AddDate(0, 0, 7),
	}
}

// monthWindow expects the first day of a month.
func monthWindow(first time.Time) Window {
	return Window{Label: first.Format("2006-01"), Start: first, End: first.AddDate(0, 1, 0)}
}
