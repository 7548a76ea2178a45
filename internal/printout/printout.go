// Package printout renders journal pages as printable HTML and, through a
// headless Chromium, as PDF.
package printout

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/rnwolfe/agenda/internal/calendar"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/planning"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Line is one printed answer; blank answers print as "-".
type Line struct {
	Label string
	Text  string
}

// SlotRow is one schedule row. Link is empty for blank slots.
type SlotRow struct {
	Slot     string
	Activity string
	Link     string
}

// DayView is the template data of a daily page.
type DayView struct {
	Date       string
	Title      string
	Priorities []string
	Tasks      []string
	People     []string
	Message    string
	Notes      string
	Morning    []SlotRow
	Afternoon  []SlotRow
	Ritual     []Line
	Reflection []Line
}

// WeekDay is one column of the weekly grid.
type WeekDay struct {
	Name   string
	Date   string
	Events []string
}

// WeekView is the template data of a weekly planning page.
type WeekView struct {
	Range    string
	Calendar string
	Sections []Line
	Days     []WeekDay
	Pages    []DayView
}

// Renderer renders pages. When it has a calendar formatter, populated slots
// carry an "add to calendar" link.
type Renderer struct {
	tmpl      *template.Template
	formatter *calendar.Formatter
}

// New parses the embedded templates. f may be nil.
func New(f *calendar.Formatter) (*Renderer, error) {
	tmpl, err := template.New("printout").Funcs(template.FuncMap{
		"dash": dash,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing print templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, formatter: f}, nil
}

// Daily writes one HTML document with a page per entry.
func (r *Renderer) Daily(w io.Writer, entries ...journal.DailyEntry) error {
	pages := make([]DayView, 0, len(entries))
	for _, e := range entries {
		pages = append(pages, r.Day(e))
	}
	if err := r.tmpl.ExecuteTemplate(w, "daily.html.tmpl", pages); err != nil {
		return fmt.Errorf("rendering daily pages: %w", err)
	}
	return nil
}

// Weekly writes the weekly planning page followed by the daily pages of
// that week that have been filled in.
func (r *Renderer) Weekly(w io.Writer, plan planning.WeeklyPlanning, entries []journal.DailyEntry) error {
	view, err := r.Week(plan, entries)
	if err != nil {
		return err
	}
	if err := r.tmpl.ExecuteTemplate(w, "weekly.html.tmpl", view); err != nil {
		return fmt.Errorf("rendering weekly page: %w", err)
	}
	return nil
}

// Day builds the view of one entry.
func (r *Renderer) Day(e journal.DailyEntry) DayView {
	v := DayView{
		Date:       e.Date,
		Title:      "Data não informada",
		Priorities: orDash(e.MainPriorities),
		Tasks:      orDash(e.TasksToDo),
		People:     orDash(e.PeopleToConnect),
		Message:    e.DayMessage,
		Notes:      e.Notes,
		Morning:    r.slots(e, journal.Morning, e.MorningSchedule),
		Afternoon:  r.slots(e, journal.Afternoon, e.AfternoonSchedule),
		Ritual:     answers(journal.MorningQuestions, e.MorningRitual),
		Reflection: answers(journal.EveningQuestions, e.EveningReflection),
	}
	if t, err := time.Parse(journal.DateLayout, e.Date); err == nil {
		v.Title = LongDate(t)
	}
	if strings.TrimSpace(v.Message) == "" {
		v.Message = "Nenhuma mensagem definida."
	}
	return v
}

// Week builds the view of a weekly planning page.
func (r *Renderer) Week(plan planning.WeeklyPlanning, entries []journal.DailyEntry) (WeekView, error) {
	start, err := time.Parse(planning.DateLayout, plan.WeekStartDate)
	if err != nil {
		return WeekView{}, fmt.Errorf("invalid week start %q", plan.WeekStartDate)
	}
	days, err := planning.WeekDays(start)
	if err != nil {
		return WeekView{}, err
	}

	byDate := make(map[string]journal.DailyEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}

	view := WeekView{
		Range:    ShortDate(days[0]) + " - " + ShortDate(days[6]) + " de " + fmt.Sprint(days[6].Year()),
		Calendar: plan.WeekCalendar,
		Sections: []Line{
			{"Ação Alinhada com Propósito", plan.PurposeAlignedAction},
			{"Interações Cruciais", plan.CrucialInteractions},
			{"Ato de Autocuidado", plan.SelfCareAct},
			{"Pessoas Inspiradoras", plan.InspiringPeople},
			{"Três Pilares do Mês", plan.ThreePillars},
			{"Insights e Reflexões", plan.InsightsReflections},
		},
	}
	for _, d := range days {
		date := d.Format(planning.DateLayout)
		col := WeekDay{Name: WeekdayName(d), Date: ShortDate(d)}
		if e, ok := byDate[date]; ok {
			for _, ev := range calendar.Events(e) {
				col.Events = append(col.Events, ev.Slot+" "+ev.Label)
			}
			view.Pages = append(view.Pages, r.Day(e))
		}
		view.Days = append(view.Days, col)
	}
	return view, nil
}

func (r *Renderer) slots(e journal.DailyEntry, h journal.Half, sched journal.Schedule) []SlotRow {
	keys := sched.Keys(h.Slots())
	seen := make(map[string]bool, len(keys))
	var rows []SlotRow
	add := func(slot string) {
		row := SlotRow{Slot: slot, Activity: strings.TrimSpace(sched[slot])}
		if row.Activity != "" && r.formatter != nil {
			row.Link = r.formatter.Link(row.Activity, e.Date, slot)
		}
		rows = append(rows, row)
	}
	for _, slot := range h.Slots() {
		seen[slot] = true
		add(slot)
	}
	for _, slot := range keys {
		if !seen[slot] {
			add(slot)
		}
	}
	return rows
}

func answers(qs []journal.Question, given map[string]string) []Line {
	out := make([]Line, 0, len(qs))
	for _, q := range qs {
		out = append(out, Line{Label: q.Text, Text: given[q.Key]})
	}
	return out
}

func orDash(items []string) []string {
	if len(items) == 0 {
		return []string{"-"}
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = dash(s)
	}
	return out
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
