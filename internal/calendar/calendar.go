// Package calendar turns schedule slots into calendar events: a deep link that
// pre-fills Google Calendar with one event, and an iCalendar document holding
// every populated slot of one or more daily pages.
//
// Both outputs are total: bad input degrades to defaults and is logged, it is
// never returned as an error.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rs/zerolog"
)

const (
	// DefaultTitle replaces an empty event label.
	DefaultTitle = "Evento da Agenda Reflexiva"
	// EventDuration is the length of every exported event.
	EventDuration = 30 * time.Minute

	basicLayout  = "20060102T150405Z"
	fallbackLead = time.Hour
)

// Event is one populated schedule slot.
type Event struct {
	Label string       `json:"label"`
	Date  string       `json:"date"`
	Half  journal.Half `json:"half"`
	Slot  string       `json:"slot"`
}

// Events lists the non-blank slots of e, morning before afternoon, each half
// in display order.
func Events(e journal.DailyEntry) []Event {
	var out []Event
	halves := []struct {
		half  journal.Half
		sched journal.Schedule
	}{
		{journal.Morning, e.MorningSchedule},
		{journal.Afternoon, e.AfternoonSchedule},
	}
	for _, h := range halves {
		for _, slot := range h.sched.Keys(h.half.Slots()) {
			label := strings.TrimSpace(h.sched[slot])
			if label == "" {
				continue
			}
			out = append(out, Event{Label: label, Date: e.Date, Half: h.half, Slot: slot})
		}
	}
	return out
}

// Formatter builds links and documents. Now and Location are injectable so
// output is deterministic under test.
type Formatter struct {
	// Now stamps generated documents and anchors the fallback start time.
	Now func() time.Time
	// Location is the zone slot times are written in.
	Location *time.Location
	// Log receives degradation warnings.
	Log zerolog.Logger
}

// NewFormatter returns a Formatter on the system clock.
func NewFormatter(loc *time.Location, log zerolog.Logger) *Formatter {
	return &Formatter{Now: time.Now, Location: loc, Log: log}
}

func (f *Formatter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

func (f *Formatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// Window returns the UTC start and end of the event at slot on date. date is
// read at local midnight in the formatter's Location.
func (f *Formatter) Window(date, slot string) (start, end time.Time, err error) {
	loc := f.location()
	day, err := time.ParseInLocation(journal.DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing event date %q: %w", date, err)
	}
	s := ParseSlot(slot)
	start = time.Date(day.Year(), day.Month(), day.Day(), s.Hour, s.Minute, 0, 0, loc).UTC()
	return start, start.Add(EventDuration), nil
}

func formatBasic(t time.Time) string {
	return t.UTC().Format(basicLayout)
}

func title(label string) string {
	if strings.TrimSpace(label) == "" {
		return DefaultTitle
	}
	return label
}
