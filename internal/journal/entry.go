package journal

import (
	"sort"
	"strings"
)

// Half selects one of the two schedule columns of a daily page.
type Half string

const (
	Morning   Half = "morning"
	Afternoon Half = "afternoon"
)

// ParseHalf accepts "morning"/"manha" and "afternoon"/"tarde".
func ParseHalf(s string) (Half, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "am", "manha", "manhã":
		return Morning, true
	case "afternoon", "pm", "tarde":
		return Afternoon, true
	}
	return "", false
}

// Slot labels printed on the daily page, in display order.
var (
	MorningSlots   = []string{"6AM", "6:30", "7", "7:30", "8", "8:30", "9", "9:30", "10", "10:30", "11", "11:30", "12PM", "12:30"}
	AfternoonSlots = []string{"1PM", "1:30", "2", "2:30", "3", "3:30", "4", "4:30", "5", "5:30", "6", "6:30", "7", "7:30"}
)

// Slots returns the canonical slot labels of h.
func (h Half) Slots() []string {
	if h == Afternoon {
		return AfternoonSlots
	}
	return MorningSlots
}

// Schedule maps a slot label to the activity written in it.
type Schedule map[string]string

// Keys returns the schedule's slot labels: canonical labels first in display
// order, then any other labels sorted.
func (s Schedule) Keys(canonical []string) []string {
	keys := make([]string, 0, len(s))
	seen := make(map[string]bool, len(canonical))
	for _, k := range canonical {
		seen[k] = true
		if _, ok := s[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range s {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Filled reports how many slots carry non-blank text.
func (s Schedule) Filled() int {
	n := 0
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// DailyEntry is one journal page.
type DailyEntry struct {
	ID                string            `json:"-"`
	Date              string            `json:"date"`
	MainPriorities    []string          `json:"main_priorities"`
	TasksToDo         []string          `json:"tasks_to_do"`
	PeopleToConnect   []string          `json:"people_to_connect"`
	DayMessage        string            `json:"day_message"`
	Notes             string            `json:"notes"`
	MorningRitual     map[string]string `json:"morning_ritual"`
	EveningReflection map[string]string `json:"evening_reflection"`
	MorningSchedule   Schedule          `json:"morning_schedule"`
	AfternoonSchedule Schedule          `json:"afternoon_schedule"`
}

// NewEntry returns a blank page for date with the list fields pre-sized the
// way the printed page lays them out.
func NewEntry(date string) DailyEntry {
	return DailyEntry{
		Date:              date,
		MainPriorities:    []string{"", "", ""},
		TasksToDo:         []string{""},
		PeopleToConnect:   []string{"", "", ""},
		MorningRitual:     map[string]string{},
		EveningReflection: map[string]string{},
		MorningSchedule:   Schedule{},
		AfternoonSchedule: Schedule{},
	}
}

// ScheduleFor returns the schedule of half h, allocating it if needed.
func (e *DailyEntry) ScheduleFor(h Half) Schedule {
	if h == Afternoon {
		if e.AfternoonSchedule == nil {
			e.AfternoonSchedule = Schedule{}
		}
		return e.AfternoonSchedule
	}
	if e.MorningSchedule == nil {
		e.MorningSchedule = Schedule{}
	}
	return e.MorningSchedule
}

// Question is one prompt of the morning ritual or evening reflection.
type Question struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

var MorningQuestions = []Question{
	{Key: "daily_energy", Text: "Qual é a energia que permeia meu dia hoje?"},
	{Key: "limiting_patterns", Text: "Quais padrões podem me desviar do meu caminho?"},
	{Key: "conscious_choices", Text: "Que escolhas conscientes posso fazer hoje?"},
	{Key: "express_gratitude", Text: "Como posso expressar amor, gratidão ou apreço?"},
	{Key: "expand_horizons", Text: "Qual pequeno passo posso dar hoje?"},
	{Key: "plant_seeds", Text: "Quais sementes estou plantando hoje?"},
	{Key: "internal_criteria", Text: "Quais são os critérios internos que guiarão minhas ações?"},
}

var EveningQuestions = []Question{
	{Key: "daily_blessings", Text: "Quais bênçãos permearam meu dia?"},
	{Key: "major_challenge", Text: "Qual foi a maior provação que enfrentei?"},
	{Key: "wisdom_gained", Text: "Qual foi a sabedoria que emergiu?"},
	{Key: "moments_of_misalignment", Text: "Quais foram os momentos de desalinho?"},
	{Key: "better_choices", Text: "Quais escolhas poderiam ter nutrido mais?"},
	{Key: "sustaining_habits", Text: "Quais hábitos me sustentaram hoje?"},
}

// Ritual names the two question sets of a daily page.
type Ritual string

const (
	RitualMorning Ritual = "morning_ritual"
	RitualEvening Ritual = "evening_reflection"
)

// LookupQuestion finds a ritual question by key in either catalog.
func LookupQuestion(key string) (Question, Ritual, bool) {
	for _, q := range MorningQuestions {
		if q.Key == key {
			return q, RitualMorning, true
		}
	}
	for _, q := range EveningQuestions {
		if q.Key == key {
			return q, RitualEvening, true
		}
	}
	return Question{}, "", false
}

// Answers returns the answer map of ritual r, allocating it if needed.
func (e *DailyEntry) Answers(r Ritual) map[string]string {
	if r == RitualEvening {
		if e.EveningReflection == nil {
			e.EveningReflection = map[string]string{}
		}
		return e.EveningReflection
	}
	if e.MorningRitual == nil {
		e.MorningRitual = map[string]string{}
	}
	return e.MorningRitual
}
