// Package planning holds the longer-horizon pages of the journal: the weekly
// plan, the monthly vision and the single future vision per owner.
package planning

// WeeklyPlanning is the plan for the week starting on WeekStartDate (a Monday).
type WeeklyPlanning struct {
	ID                   string `json:"-"`
	WeekStartDate        string `json:"week_start_date"`
	ThreePillars         string `json:"three_pillars"`
	PurposeAlignedAction string `json:"purpose_aligned_action"`
	SelfCareAct          string `json:"self_care_act"`
	CrucialInteractions  string `json:"crucial_interactions"`
	InspiringPeople      string `json:"inspiring_people"`
	InsightsReflections  string `json:"insights_reflections"`
	WeekCalendar         string `json:"week_calendar"`
}

// Project is one of the month's major projects.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FirstSteps  string `json:"first_steps"`
}

// MajorEvent is a month event worth preparing for.
type MajorEvent struct {
	Title       string `json:"title"`
	Preparation string `json:"preparation"`
}

// MonthlyVision is the vision for one month, keyed "YYYY-MM".
type MonthlyVision struct {
	ID               string       `json:"-"`
	Month            string       `json:"month"`
	IdealMonthVision string       `json:"ideal_month_vision"`
	MajorProjects    []Project    `json:"major_projects"`
	MajorEvents      []MajorEvent `json:"major_events"`
	PreparationNotes string       `json:"preparation_notes"`
	BestVersionNotes string       `json:"best_version_notes"`
}

// Goal is a one- or three-year goal.
type Goal struct {
	Goal       string `json:"goal"`
	Steps      string `json:"steps"`
	TargetDate string `json:"target_date"`
}

// FutureVision is the owner's long-term vision. There is at most one.
type FutureVision struct {
	ID                     string `json:"-"`
	LifePurpose            string `json:"life_purpose"`
	IdealFutureDescription string `json:"ideal_future_description"`
	PersonIWantToBe        string `json:"person_i_want_to_be"`
	OneYearGoals           []Goal `json:"one_year_goals"`
	ThreeYearGoals         []Goal `json:"three_year_goals"`
	MostImportantToAchieve string `json:"most_important_to_achieve"`
	EndOfLifeReflection    string `json:"end_of_life_reflection"`
}

// NewMonthlyVision returns a blank vision with one empty project and event row.
func NewMonthlyVision(month string) MonthlyVision {
	return MonthlyVision{
		Month:         month,
		MajorProjects: []Project{{}},
		MajorEvents:   []MajorEvent{{}},
	}
}

// NewFutureVision returns a blank vision with one empty goal per horizon.
func NewFutureVision() FutureVision {
	return FutureVision{
		OneYearGoals:   []Goal{{}},
		ThreeYearGoals: []Goal{{}},
	}
}
