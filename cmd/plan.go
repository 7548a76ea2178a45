package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/planning"
	"github.com/rnwolfe/agenda/internal/printout"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/spf13/cobra"
)

var (
	planDate        string
	planDescription string
	planSteps       string
	planPrep        string
	planTarget      string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Weekly planning, monthly vision and future vision",
}

var planWeekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "Show the plan of the week containing date",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlanWeek,
}

var planWeekSetCmd = &cobra.Command{
	Use:   "set <field> <text...>",
	Short: "Set a field of the weekly plan",
	Long:  "Set a field of the weekly plan. Fields: " + strings.Join(fieldNames(weekFields), ", "),
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlanWeekSet,
}

var planMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Show the vision for a month",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlanMonth,
}

var planMonthSetCmd = &cobra.Command{
	Use:   "set <field> <text...>",
	Short: "Set a field of the monthly vision",
	Long:  "Set a field of the monthly vision. Fields: " + strings.Join(fieldNames(monthFields), ", "),
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlanMonthSet,
}

var planMonthProjectCmd = &cobra.Command{
	Use:   "project <title...>",
	Short: "Add a major project to the month",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlanMonthProject,
}

var planMonthEventCmd = &cobra.Command{
	Use:   "event <title...>",
	Short: "Add a major event to the month",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlanMonthEvent,
}

var planVisionCmd = &cobra.Command{
	Use:   "vision",
	Short: "Show your future vision",
	Args:  cobra.NoArgs,
	RunE:  runPlanVision,
}

var planVisionSetCmd = &cobra.Command{
	Use:   "set <field> <text...>",
	Short: "Set a field of the future vision",
	Long:  "Set a field of the future vision. Fields: " + strings.Join(fieldNames(visionFields), ", "),
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlanVisionSet,
}

var planVisionGoalCmd = &cobra.Command{
	Use:   "goal <1y|3y> <goal...>",
	Short: "Add a one or three year goal",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlanVisionGoal,
}

func init() {
	planWeekSetCmd.Flags().StringVarP(&planDate, "date", "d", "", "Any date of the week (default today)")
	planWeekCmd.AddCommand(planWeekSetCmd)

	for _, c := range []*cobra.Command{planMonthSetCmd, planMonthProjectCmd, planMonthEventCmd} {
		c.Flags().StringVarP(&planDate, "month", "m", "", "Month as YYYY-MM (default this month)")
		planMonthCmd.AddCommand(c)
	}
	planMonthProjectCmd.Flags().StringVar(&planDescription, "description", "", "What the project is about")
	planMonthProjectCmd.Flags().StringVar(&planSteps, "steps", "", "First steps")
	planMonthEventCmd.Flags().StringVar(&planPrep, "prep", "", "How to prepare")

	planVisionGoalCmd.Flags().StringVar(&planSteps, "steps", "", "Steps toward the goal")
	planVisionGoalCmd.Flags().StringVar(&planTarget, "target", "", "Target date")
	planVisionCmd.AddCommand(planVisionSetCmd)
	planVisionCmd.AddCommand(planVisionGoalCmd)

	planCmd.AddCommand(planWeekCmd)
	planCmd.AddCommand(planMonthCmd)
	planCmd.AddCommand(planVisionCmd)
}

type field[T any] struct {
	label string
	ptr   func(*T) *string
}

var weekFields = map[string]field[planning.WeeklyPlanning]{
	"pillars":      {"Três pilares", func(w *planning.WeeklyPlanning) *string { return &w.ThreePillars }},
	"action":       {"Ação alinhada ao propósito", func(w *planning.WeeklyPlanning) *string { return &w.PurposeAlignedAction }},
	"selfcare":     {"Ato de autocuidado", func(w *planning.WeeklyPlanning) *string { return &w.SelfCareAct }},
	"interactions": {"Interações cruciais", func(w *planning.WeeklyPlanning) *string { return &w.CrucialInteractions }},
	"people":       {"Pessoas inspiradoras", func(w *planning.WeeklyPlanning) *string { return &w.InspiringPeople }},
	"insights":     {"Insights e reflexões", func(w *planning.WeeklyPlanning) *string { return &w.InsightsReflections }},
	"calendar":     {"Calendário da semana", func(w *planning.WeeklyPlanning) *string { return &w.WeekCalendar }},
}

var weekOrder = []string{"pillars", "action", "selfcare", "interactions", "people", "insights", "calendar"}

var monthFields = map[string]field[planning.MonthlyVision]{
	"vision":      {"Mês ideal", func(v *planning.MonthlyVision) *string { return &v.IdealMonthVision }},
	"preparation": {"Preparação", func(v *planning.MonthlyVision) *string { return &v.PreparationNotes }},
	"best":        {"Melhor versão", func(v *planning.MonthlyVision) *string { return &v.BestVersionNotes }},
}

var visionFields = map[string]field[planning.FutureVision]{
	"purpose":    {"Propósito de vida", func(v *planning.FutureVision) *string { return &v.LifePurpose }},
	"future":     {"Futuro ideal", func(v *planning.FutureVision) *string { return &v.IdealFutureDescription }},
	"person":     {"Quem quero ser", func(v *planning.FutureVision) *string { return &v.PersonIWantToBe }},
	"important":  {"O mais importante", func(v *planning.FutureVision) *string { return &v.MostImportantToAchieve }},
	"reflection": {"Reflexão de fim de vida", func(v *planning.FutureVision) *string { return &v.EndOfLifeReflection }},
}

var visionOrder = []string{"purpose", "future", "person", "important", "reflection"}

func fieldNames[T any](m map[string]field[T]) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func lookupField[T any](m map[string]field[T], name string) (field[T], error) {
	f, ok := m[name]
	if !ok {
		return field[T]{}, fmt.Errorf("unknown field %q (valid: %s)", name, strings.Join(fieldNames(m), ", "))
	}
	return f, nil
}

func orBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ui.Muted.Render("-")
	}
	return s
}

func runPlanWeek(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	date, err := a.resolveDate(args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	plan, err := a.plans.Week(ctx, a.owner, date)
	if err != nil {
		return err
	}
	start, err := time.Parse(journal.DateLayout, plan.WeekStartDate)
	if err != nil {
		return err
	}
	days, err := planning.WeekDays(start)
	if err != nil {
		return err
	}
	end := days[len(days)-1].Format(journal.DateLayout)
	pages, err := a.pages.Range(ctx, a.owner, plan.WeekStartDate, end)
	if err != nil {
		return err
	}
	byDate := make(map[string]journal.DailyEntry, len(pages))
	for _, p := range pages {
		byDate[p.Date] = p
	}

	ui.Header(fmt.Sprintf("%s Semana de %s", ui.IconCalendar, printout.ShortDate(start)))
	fmt.Println()
	for _, name := range weekOrder {
		f := weekFields[name]
		ui.Kv(name, f.label+": "+orBlank(*f.ptr(&plan)))
	}
	fmt.Println()
	for _, d := range days {
		key := d.Format(journal.DateLayout)
		p, ok := byDate[key]
		status := ui.Muted.Render("em branco")
		if ok {
			status = fmt.Sprintf("%d horários", p.MorningSchedule.Filled()+p.AfternoonSchedule.Filled())
		}
		fmt.Printf("  %s %s  %s\n", ui.KeyStyle.Render(fmt.Sprintf("%-14s", printout.WeekdayName(d))), key, status)
	}
	fmt.Println()
	return nil
}

func runPlanWeekSet(_ *cobra.Command, args []string) error {
	f, err := lookupField(weekFields, args[0])
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var dateArg []string
	if planDate != "" {
		dateArg = []string{planDate}
	}
	date, err := a.resolveDate(dateArg)
	if err != nil {
		return err
	}
	ctx := context.Background()
	plan, err := a.plans.Week(ctx, a.owner, date)
	if err != nil {
		return err
	}
	*f.ptr(&plan) = strings.Join(args[1:], " ")
	saved, err := a.plans.SaveWeek(ctx, a.owner, plan)
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("%s salvo na semana de %s", f.label, saved.WeekStartDate))
	return nil
}

func (a *app) resolveMonth(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return a.today().Format(planning.MonthLayout), nil
	}
	if _, err := time.Parse(planning.MonthLayout, args[0]); err != nil {
		return "", fmt.Errorf("invalid month %q: expected YYYY-MM", args[0])
	}
	return args[0], nil
}

func runPlanMonth(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	month, err := a.resolveMonth(args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	v, err := a.plans.Month(ctx, a.owner, month)
	if err != nil {
		return err
	}
	days, err := planning.MonthDays(month, a.loc)
	if err != nil {
		return err
	}
	pages, err := a.pages.Range(ctx, a.owner,
		days[0].Format(journal.DateLayout), days[len(days)-1].Format(journal.DateLayout))
	if err != nil {
		return err
	}

	ui.Header(ui.IconLeaf + " " + printout.MonthName(days[0]))
	fmt.Println()
	for _, name := range []string{"vision", "preparation", "best"} {
		f := monthFields[name]
		ui.Kv(name, f.label+": "+orBlank(*f.ptr(&v)))
	}
	fmt.Println()
	fmt.Println(ui.Subtitle.Render("  Projetos"))
	for _, p := range v.MajorProjects {
		if p.Title == "" {
			continue
		}
		fmt.Printf("    %s %s\n", ui.Accent.Render(ui.IconDot), p.Title)
		if p.Description != "" {
			fmt.Printf("      %s\n", ui.Muted.Render(p.Description))
		}
		if p.FirstSteps != "" {
			fmt.Printf("      %s %s\n", ui.IconArrow, p.FirstSteps)
		}
	}
	fmt.Println(ui.Subtitle.Render("  Eventos"))
	for _, e := range v.MajorEvents {
		if e.Title == "" {
			continue
		}
		fmt.Printf("    %s %s\n", ui.Accent.Render(ui.IconDot), e.Title)
		if e.Preparation != "" {
			fmt.Printf("      %s %s\n", ui.IconArrow, e.Preparation)
		}
	}
	fmt.Println()
	ui.Kv("Páginas", fmt.Sprintf("%d de %d dias", len(pages), len(days)))
	fmt.Println()
	return nil
}

// editMonth loads the --month vision, applies edit and saves it.
func editMonth(edit func(v *planning.MonthlyVision)) (planning.MonthlyVision, error) {
	a, err := openApp()
	if err != nil {
		return planning.MonthlyVision{}, err
	}
	defer a.Close()

	month, err := a.resolveMonth([]string{planDate})
	if err != nil {
		return planning.MonthlyVision{}, err
	}
	ctx := context.Background()
	v, err := a.plans.Month(ctx, a.owner, month)
	if err != nil {
		return planning.MonthlyVision{}, err
	}
	edit(&v)
	return a.plans.SaveMonth(ctx, a.owner, v)
}

func runPlanMonthSet(_ *cobra.Command, args []string) error {
	f, err := lookupField(monthFields, args[0])
	if err != nil {
		return err
	}
	v, err := editMonth(func(v *planning.MonthlyVision) {
		*f.ptr(v) = strings.Join(args[1:], " ")
	})
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("%s salvo em %s", f.label, v.Month))
	return nil
}

func runPlanMonthProject(_ *cobra.Command, args []string) error {
	p := planning.Project{Title: strings.Join(args, " "), Description: planDescription, FirstSteps: planSteps}
	v, err := editMonth(func(v *planning.MonthlyVision) {
		v.MajorProjects = appendProject(v.MajorProjects, p)
	})
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Projeto %q adicionado a %s", p.Title, v.Month))
	return nil
}

func runPlanMonthEvent(_ *cobra.Command, args []string) error {
	e := planning.MajorEvent{Title: strings.Join(args, " "), Preparation: planPrep}
	v, err := editMonth(func(v *planning.MonthlyVision) {
		if len(v.MajorEvents) == 1 && v.MajorEvents[0] == (planning.MajorEvent{}) {
			v.MajorEvents = v.MajorEvents[:0]
		}
		v.MajorEvents = append(v.MajorEvents, e)
	})
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Evento %q adicionado a %s", e.Title, v.Month))
	return nil
}

// appendProject adds p, replacing the blank placeholder row.
func appendProject(list []planning.Project, p planning.Project) []planning.Project {
	if len(list) == 1 && list[0] == (planning.Project{}) {
		list = list[:0]
	}
	return append(list, p)
}

func runPlanVision(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	v, err := a.plans.Future(context.Background(), a.owner)
	if err != nil {
		return err
	}

	ui.Header(ui.IconStar + " Visão de futuro")
	fmt.Println()
	for _, name := range visionOrder {
		f := visionFields[name]
		ui.Kv(name, f.label+": "+orBlank(*f.ptr(&v)))
	}
	printGoals := func(title string, goals []planning.Goal) {
		fmt.Println()
		fmt.Println(ui.Subtitle.Render("  " + title))
		for _, g := range goals {
			if g.Goal == "" {
				continue
			}
			line := g.Goal
			if g.TargetDate != "" {
				line += ui.Muted.Render(" (" + g.TargetDate + ")")
			}
			fmt.Printf("    %s %s\n", ui.Accent.Render(ui.IconDot), line)
			if g.Steps != "" {
				fmt.Printf("      %s %s\n", ui.IconArrow, g.Steps)
			}
		}
	}
	printGoals("Metas de 1 ano", v.OneYearGoals)
	printGoals("Metas de 3 anos", v.ThreeYearGoals)
	fmt.Println()
	return nil
}

// editVision loads the future vision, applies edit and saves it.
func editVision(edit func(v *planning.FutureVision) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	v, err := a.plans.Future(ctx, a.owner)
	if err != nil {
		return err
	}
	if err := edit(&v); err != nil {
		return err
	}
	_, err = a.plans.SaveFuture(ctx, a.owner, v)
	return err
}

func runPlanVisionSet(_ *cobra.Command, args []string) error {
	f, err := lookupField(visionFields, args[0])
	if err != nil {
		return err
	}
	if err := editVision(func(v *planning.FutureVision) error {
		*f.ptr(v) = strings.Join(args[1:], " ")
		return nil
	}); err != nil {
		return err
	}
	ui.Ok(f.label + " salvo")
	return nil
}

func runPlanVisionGoal(_ *cobra.Command, args []string) error {
	g := planning.Goal{Goal: strings.Join(args[1:], " "), Steps: planSteps, TargetDate: planTarget}
	err := editVision(func(v *planning.FutureVision) error {
		var list *[]planning.Goal
		switch args[0] {
		case "1y", "1":
			list = &v.OneYearGoals
		case "3y", "3":
			list = &v.ThreeYearGoals
		default:
			return fmt.Errorf("horizon must be 1y or 3y, got %q", args[0])
		}
		if len(*list) == 1 && (*list)[0] == (planning.Goal{}) {
			*list = (*list)[:0]
		}
		*list = append(*list, g)
		return nil
	})
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Meta %q adicionada", g.Goal))
	return nil
}
