package printout

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rnwolfe/agenda/internal/calendar"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/planning"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, withLinks bool) *Renderer {
	t.Helper()
	var f *calendar.Formatter
	if withLinks {
		f = &calendar.Formatter{
			Now:      func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) },
			Location: time.UTC,
			Log:      zerolog.Nop(),
		}
	}
	r, err := New(f)
	require.NoError(t, err)
	return r
}

func sampleEntry() journal.DailyEntry {
	e := journal.NewEntry("2026-10-19")
	e.MainPriorities = []string{"Escrever", "", "Treinar"}
	e.DayMessage = "Um passo de cada vez"
	e.MorningSchedule["7:30"] = "Caminhada"
	e.AfternoonSchedule["2"] = "Leitura <livro>"
	e.MorningRitual["daily_energy"] = "Calma"
	return e
}

func TestLongDate(t *testing.T) {
	d := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "segunda-feira, 19 de outubro de 2026", LongDate(d))
	assert.Equal(t, "19 de out.", ShortDate(d))
	assert.Equal(t, "SEGUNDA-FEIRA", WeekdayName(d))
	assert.Equal(t, "outubro de 2026", MonthName(d))
}

func TestDay(t *testing.T) {
	r := newRenderer(t, false)
	v := r.Day(sampleEntry())

	assert.Equal(t, "segunda-feira, 19 de outubro de 2026", v.Title)
	assert.Equal(t, []string{"Escrever", "-", "Treinar"}, v.Priorities)
	assert.Len(t, v.Morning, len(journal.MorningSlots))
	assert.Len(t, v.Ritual, len(journal.MorningQuestions))
	assert.Equal(t, "Calma", v.Ritual[0].Text)
	for _, row := range v.Morning {
		assert.Empty(t, row.Link, "no formatter, no links")
	}
}

func TestDay_BlankFields(t *testing.T) {
	r := newRenderer(t, false)
	v := r.Day(journal.DailyEntry{Date: "not a date"})
	assert.Equal(t, "Data não informada", v.Title)
	assert.Equal(t, "Nenhuma mensagem definida.", v.Message)
	assert.Equal(t, []string{"-"}, v.Tasks)
}

func TestDay_ExtraSlotsAppended(t *testing.T) {
	r := newRenderer(t, false)
	e := journal.NewEntry("2026-10-19")
	e.MorningSchedule["5:45"] = "Alongar"
	v := r.Day(e)
	last := v.Morning[len(v.Morning)-1]
	assert.Equal(t, "5:45", last.Slot)
	assert.Equal(t, "Alongar", last.Activity)
}

func TestDaily_HTML(t *testing.T) {
	r := newRenderer(t, true)
	var buf bytes.Buffer
	require.NoError(t, r.Daily(&buf, sampleEntry()))

	html := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(html), "<!DOCTYPE html>"))
	assert.Contains(t, html, "segunda-feira, 19 de outubro de 2026")
	assert.Contains(t, html, "Caminhada")
	assert.Contains(t, html, "Leitura &lt;livro&gt;", "activity text must be escaped")
	assert.Contains(t, html, "calendar/render?action=TEMPLATE")
	assert.Equal(t, 1, strings.Count(html, `class="page"`))
}

func TestWeekly_HTML(t *testing.T) {
	r := newRenderer(t, false)
	plan := planning.WeeklyPlanning{WeekStartDate: "2026-10-19", SelfCareAct: "Yoga"}
	other := journal.NewEntry("2026-10-21")
	other.AfternoonSchedule["3"] = "Dentista"

	view, err := r.Week(plan, []journal.DailyEntry{sampleEntry(), other})
	require.NoError(t, err)
	require.Len(t, view.Days, 7)
	assert.Equal(t, "SEGUNDA-FEIRA", view.Days[0].Name)
	assert.Equal(t, "DOMINGO", view.Days[6].Name)
	assert.Equal(t, []string{"7:30 Caminhada", "2 Leitura <livro>"}, view.Days[0].Events)
	assert.Equal(t, []string{"3 Dentista"}, view.Days[2].Events)
	assert.Len(t, view.Pages, 2)
	assert.Equal(t, "19 de out. - 25 de out. de 2026", view.Range)

	var buf bytes.Buffer
	require.NoError(t, r.Weekly(&buf, plan, nil))
	html := buf.String()
	assert.Contains(t, html, "SEMANA À FRENTE")
	assert.Contains(t, html, "Yoga")
	assert.Contains(t, html, "Interações Cruciais")
}

func TestWeekly_InvalidStart(t *testing.T) {
	r := newRenderer(t, false)
	var buf bytes.Buffer
	assert.Error(t, r.Weekly(&buf, planning.WeeklyPlanning{WeekStartDate: "?"}, nil))
}

func TestPDF_EmptyDocument(t *testing.T) {
	_, err := PDF(context.Background(), nil, PDFOptions{})
	assert.Error(t, err)
}
