package planning

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// WeekStart returns the Monday on or before t, at midnight in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// WeekDays returns the seven days of the week starting at start.
func WeekDays(start time.Time) ([]time.Time, error) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   7,
		Dtstart: start,
	})
	if err != nil {
		return nil, fmt.Errorf("building week rule: %w", err)
	}
	return r.All(), nil
}

// MonthDays returns every day of month ("YYYY-MM") in loc.
func MonthDays(month string, loc *time.Location) ([]time.Time, error) {
	first, err := time.ParseInLocation(MonthLayout, month, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	last := first.AddDate(0, 1, -1)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: first,
		Until:   last,
	})
	if err != nil {
		return nil, fmt.Errorf("building month rule: %w", err)
	}
	return r.All(), nil
}

// WeekOf parses date and returns its week start as YYYY-MM-DD.
func WeekOf(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return WeekStart(t).Format(DateLayout), nil
}
