package calendar

import (
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rnwolfe/agenda/internal/journal"
)

const (
	// ProductID identifies documents written by this package.
	ProductID = "-//rnwolfe//Agenda Reflexiva//PT"

	eventDescription = "Adicionado da Agenda Reflexiva"
	uidDomain        = "agenda-reflexiva"
)

// emptyDocument is returned when a document cannot be built at all.
const emptyDocument = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:" + ProductID + "\r\n" +
	"END:VCALENDAR\r\n"

// Document renders an iCalendar document with one 30 minute VEVENT per
// populated slot of entries. Entries with an unreadable date are skipped.
// With no events the document still carries its header and footer.
func (f *Formatter) Document(entries ...journal.DailyEntry) (doc string) {
	defer func() {
		if r := recover(); r != nil {
			f.Log.Error().Interface("panic", r).Int("entries", len(entries)).Msg("calendar document failed, returning empty calendar")
			doc = emptyDocument
		}
	}()

	cal := ical.NewCalendarFor("Agenda Reflexiva")
	cal.SetProductId(ProductID)

	generated := f.now()
	stamp := generated.UTC().Truncate(time.Second)
	seen := make(map[string]int)
	for _, e := range entries {
		for _, ev := range Events(e) {
			start, end, err := f.Window(ev.Date, ev.Slot)
			if err != nil {
				f.Log.Warn().Err(err).Str("slot", ev.Slot).Msg("skipping calendar event")
				continue
			}
			uid := eventUID(ev, generated)
			n := seen[uid]
			seen[uid]++
			if n > 0 {
				uid = strconv.Itoa(n) + "-" + uid
			}

			vev := cal.AddEvent(uid)
			vev.SetDtStampTime(stamp)
			vev.SetStartAt(start)
			vev.SetEndAt(end)
			vev.SetSummary(sanitizeSummary(ev.Label))
			vev.SetDescription(eventDescription)
		}
	}
	return cal.Serialize(ical.WithNewLineWindows)
}

// eventUID joins date, half, slot and generation time. Whitespace in the slot
// label is dropped.
func eventUID(ev Event, at time.Time) string {
	slot := strings.Join(strings.Fields(ev.Slot), "")
	return ev.Date + "-" + string(ev.Half) + "-" + slot + "-" +
		strconv.FormatInt(at.UnixNano(), 10) + "@" + uidDomain
}

// sanitizeSummary drops the characters that need escaping in a TEXT value.
func sanitizeSummary(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', ';', '\\':
			return -1
		case '\r', '\n':
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
