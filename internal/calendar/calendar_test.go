package calendar

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 34, 56, 789, time.UTC)

func newTestFormatter(loc *time.Location) (*Formatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Formatter{
		Now:      func() time.Time { return fixedNow },
		Location: loc,
		Log:      zerolog.New(&buf),
	}, &buf
}

func parseLink(t *testing.T, link string) url.Values {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)
	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	return q
}

func linkWindow(t *testing.T, q url.Values) (time.Time, time.Time) {
	t.Helper()
	start, end, ok := strings.Cut(q.Get("dates"), "/")
	require.True(t, ok, "dates = %q", q.Get("dates"))
	s, err := time.Parse(basicLayout, start)
	require.NoError(t, err)
	e, err := time.Parse(basicLayout, end)
	require.NoError(t, err)
	return s, e
}

func TestLink(t *testing.T) {
	f, _ := newTestFormatter(time.UTC)

	q := parseLink(t, f.Link("Reunião de equipe", "2024-03-15", "9:30"))
	assert.Equal(t, "Reunião de equipe", q.Get("text"))
	assert.Equal(t, "20240315T093000Z/20240315T100000Z", q.Get("dates"))
	assert.Equal(t, "Adicionado a partir da Agenda Reflexiva.", q.Get("details"))
}

func TestLink_EmptyLabel(t *testing.T) {
	f, _ := newTestFormatter(time.UTC)
	for _, label := range []string{"", "   "} {
		q := parseLink(t, f.Link(label, "2024-03-15", "9"))
		assert.Equal(t, DefaultTitle, q.Get("text"))
	}
}

func TestLink_ThirtyMinutes(t *testing.T) {
	f, _ := newTestFormatter(time.UTC)
	for _, slot := range []string{"", "6AM", "7:30", "12PM", "5:30", "11:59pm", "nonsense"} {
		start, end := linkWindow(t, parseLink(t, f.Link("x", "2024-12-31", slot)))
		assert.Equal(t, 1800.0, end.Sub(start).Seconds(), "slot %q", slot)
	}
}

func TestLink_LocalTimeConvertedToUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	f, _ := newTestFormatter(loc)

	q := parseLink(t, f.Link("Caminhada", "2024-03-15", "7AM"))
	assert.Equal(t, "20240315T100000Z/20240315T103000Z", q.Get("dates"))
}

func TestLink_InvalidDateFallsBackToNextHour(t *testing.T) {
	f, logs := newTestFormatter(time.UTC)

	start, end := linkWindow(t, parseLink(t, f.Link("x", "not-a-date", "9")))
	assert.Equal(t, fixedNow.Add(time.Hour).Truncate(time.Second), start)
	assert.Equal(t, 30*time.Minute, end.Sub(start))
	assert.Contains(t, logs.String(), "invalid event date")
}

func TestLink_Idempotent(t *testing.T) {
	f, _ := newTestFormatter(time.UTC)
	assert.Equal(t, f.Link("Estudo", "2024-03-15", "2:30"), f.Link("Estudo", "2024-03-15", "2:30"))
	assert.Equal(t, f.Link("x", "not-a-date", "9"), f.Link("x", "not-a-date", "9"))
}

func TestDegradedLink(t *testing.T) {
	q := parseLink(t, degradedLink("Leitura", "7:30"))
	assert.Equal(t, "Leitura", q.Get("text"))
	assert.Empty(t, q.Get("dates"))
	assert.Equal(t, "Horário: 7:30 - Adicionado a partir da Agenda Reflexiva.", q.Get("details"))

	q = parseLink(t, degradedLink("Leitura", " 7:30 "))
	assert.Equal(t, "Horário:  7:30  - Adicionado a partir da Agenda Reflexiva.", q.Get("details"), "slot text is kept verbatim")
}

func TestEvents(t *testing.T) {
	e := journal.NewEntry("2024-03-15")
	e.MorningSchedule["9"] = "Estudo"
	e.MorningSchedule["6AM"] = "Meditação"
	e.MorningSchedule["7"] = "   "
	e.AfternoonSchedule["2"] = "Leitura"

	evs := Events(e)
	require.Len(t, evs, 3)
	assert.Equal(t, "6AM", evs[0].Slot)
	assert.Equal(t, "9", evs[1].Slot)
	assert.Equal(t, journal.Afternoon, evs[2].Half)
	assert.Equal(t, "Leitura", evs[2].Label)
}

func TestDocument_Empty(t *testing.T) {
	f, _ := newTestFormatter(time.UTC)

	doc := f.Document(journal.NewEntry("2024-03-15"))
	assert.True(t, strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(doc, "END:VCALENDAR\r\n"))
	assert.Contains(t, doc, "VERSION:2.0")
	assert.Contains(t, doc, "PRODID:"+ProductID)
	assert.NotContains(t, doc, "BEGIN:VEVENT")
	assertCRLF(t, doc)
}

// assertCRLF fails when doc has a line feed without a preceding carriage return.
func assertCRLF(t *testing.T, doc string) {
	t.Helper()
	for i := 0; i < len(doc); i++ {
		if doc[i] == '\n' && (i == 0 || doc[i-1] != '\r') {
			t.Fatalf("bare line feed at byte %d in %q", i, doc)
		}
	}
}

func TestDocument_Events(t *testing.T) {
	f, _ := newTestFormatter(time.UTC)

	e := journal.NewEntry("2024-03-15")
	e.MorningSchedule["7:30"] = "Caminhada, parque; lago\\norte"
	e.MorningSchedule["6:30"] = "Meditação"
	e.AfternoonSchedule["6:30"] = "Jantar"
	e.AfternoonSchedule["3"] = ""

	doc := f.Document(e)
	assert.Equal(t, 3, strings.Count(doc, "BEGIN:VEVENT"))
	assert.Equal(t, 3, strings.Count(doc, "END:VEVENT"))
	assert.Contains(t, doc, "SUMMARY:Caminhada parque lagonorte")
	assert.Contains(t, doc, "DESCRIPTION:Adicionado da Agenda Reflexiva")
	assertCRLF(t, doc)

	cal, err := ical.ParseCalendar(strings.NewReader(doc))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 3)

	uids := map[string]bool{}
	for _, ev := range events {
		uid := ev.Id()
		assert.True(t, strings.HasSuffix(uid, "@agenda-reflexiva"), uid)
		assert.True(t, strings.HasPrefix(uid, "2024-03-15-"), uid)
		uids[uid] = true

		start, err := ev.GetStartAt()
		require.NoError(t, err)
		end, err := ev.GetEndAt()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, end.Sub(start))
	}
	assert.Len(t, uids, 3, "UIDs must be distinct")
}

func TestDocument_SkipsInvalidDate(t *testing.T) {
	f, logs := newTestFormatter(time.UTC)

	bad := journal.NewEntry("15/03/2024")
	bad.MorningSchedule["9"] = "Estudo"
	good := journal.NewEntry("2024-03-16")
	good.AfternoonSchedule["2"] = "Leitura"

	doc := f.Document(bad, good)
	assert.Equal(t, 1, strings.Count(doc, "BEGIN:VEVENT"))
	assert.Contains(t, doc, "SUMMARY:Leitura")
	assert.Contains(t, logs.String(), "skipping calendar event")
}

func TestDocument_Idempotent(t *testing.T) {
	f, _ := newTestFormatter(time.UTC)

	e := journal.NewEntry("2024-03-15")
	e.MorningSchedule["8"] = "Trabalho"
	assert.Equal(t, f.Document(e), f.Document(e))
}

func TestDocument_DuplicateEntriesGetDistinctUIDs(t *testing.T) {
	f, _ := newTestFormatter(time.UTC)

	e := journal.NewEntry("2024-03-15")
	e.MorningSchedule["8"] = "Trabalho"

	cal, err := ical.ParseCalendar(strings.NewReader(f.Document(e, e)))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)
	assert.NotEqual(t, events[0].Id(), events[1].Id())
}

func TestSanitizeSummary(t *testing.T) {
	assert.Equal(t, "a b c", sanitizeSummary(" a, b;\\ c "))
	assert.Equal(t, "linha um linha dois", sanitizeSummary("linha um\nlinha dois"))
}
