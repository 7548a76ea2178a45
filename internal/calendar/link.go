package calendar

import (
	"net/url"
	"time"
)

const (
	renderURL   = "https://www.google.com/calendar/render"
	linkDetails = "Adicionado a partir da Agenda Reflexiva."
)

// Link returns a Google Calendar URL that pre-fills a 30 minute event for
// label at slot on date.
//
// An unreadable date schedules the event one hour from now. If building the
// URL fails anyway, a degraded link without dates is returned instead.
func (f *Formatter) Link(label, date, slot string) (link string) {
	text := title(label)
	defer func() {
		if r := recover(); r != nil {
			f.Log.Error().Interface("panic", r).Str("date", date).Str("slot", slot).Msg("calendar link failed, returning link without dates")
			link = degradedLink(text, slot)
		}
	}()

	start, end, err := f.Window(date, slot)
	if err != nil {
		f.Log.Warn().Err(err).Str("slot", slot).Msg("invalid event date, scheduling one hour from now")
		start = f.now().Add(fallbackLead).UTC().Truncate(time.Second)
		end = start.Add(EventDuration)
	}

	q := url.Values{}
	q.Set("text", text)
	q.Set("dates", formatBasic(start)+"/"+formatBasic(end))
	q.Set("details", linkDetails)
	return renderURL + "?action=TEMPLATE&" + q.Encode()
}

// LinkFor is Link for an Event.
func (f *Formatter) LinkFor(ev Event) string {
	return f.Link(ev.Label, ev.Date, ev.Slot)
}

func degradedLink(text, slot string) string {
	q := url.Values{}
	q.Set("text", text)
	q.Set("details", "Horário: "+slot+" - "+linkDetails)
	return renderURL + "?action=TEMPLATE&" + q.Encode()
}
