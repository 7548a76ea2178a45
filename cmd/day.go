package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rnwolfe/agenda/internal/calendar"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/printout"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/spf13/cobra"
)

var (
	dayDate  string
	dayRaw   bool
	dayLinks bool
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show or edit a daily page",
	Long: `Show the daily page for date (YYYY-MM-DD, "hoje", "ontem" or "amanha").
Defaults to today. Subcommands edit the page named by --date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDayShow,
}

var daySetCmd = &cobra.Command{
	Use:   "set <manha|tarde> <slot> <activity...>",
	Short: "Write an activity into a schedule slot",
	Example: `  agenda day set manha 7:30 Caminhada no parque
  agenda day set tarde 2 "Reunião de equipe" --date 2026-10-20`,
	Args: cobra.MinimumNArgs(3),
	RunE: runDaySet,
}

var dayClearCmd = &cobra.Command{
	Use:   "clear <manha|tarde> <slot>",
	Short: "Clear a schedule slot",
	Args:  cobra.ExactArgs(2),
	RunE:  runDayClear,
}

var dayMessageCmd = &cobra.Command{
	Use:   "message <text...>",
	Short: "Set the message of the day",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDayMessage,
}

var dayNoteCmd = &cobra.Command{
	Use:   "note <text...>",
	Short: "Append a line to the page notes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDayNote,
}

var dayPriorityCmd = &cobra.Command{
	Use:   "priority <1-3> <text...>",
	Short: "Set one of the three main priorities",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDayPriority,
}

var dayPersonCmd = &cobra.Command{
	Use:   "person <1-3> <name...>",
	Short: "Set one of the three people to connect with",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDayPerson,
}

var dayTaskCmd = &cobra.Command{
	Use:   "task <text...>",
	Short: "Add a task to the page",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDayTask,
}

var dayAnswerCmd = &cobra.Command{
	Use:   "answer <question> <text...>",
	Short: "Answer a morning ritual or evening reflection question",
	Long:  `Answer a ritual question by key. Run "agenda day questions" to list the keys.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDayAnswer,
}

var dayQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the ritual question keys",
	Args:  cobra.NoArgs,
	RunE:  runDayQuestions,
}

func init() {
	dayCmd.Flags().BoolVar(&dayRaw, "raw", false, "Print markdown without terminal styling")
	dayCmd.Flags().BoolVar(&dayLinks, "links", false, "Add a Google Calendar link to every slot")
	dayCmd.PersistentFlags().StringVarP(&dayDate, "date", "d", "", "Page date (default today)")

	dayCmd.AddCommand(daySetCmd)
	dayCmd.AddCommand(dayClearCmd)
	dayCmd.AddCommand(dayMessageCmd)
	dayCmd.AddCommand(dayNoteCmd)
	dayCmd.AddCommand(dayPriorityCmd)
	dayCmd.AddCommand(dayPersonCmd)
	dayCmd.AddCommand(dayTaskCmd)
	dayCmd.AddCommand(dayAnswerCmd)
	dayCmd.AddCommand(dayQuestionsCmd)
}

// dateArgs prefers the positional date, then --date, then today.
func dateArgs(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if dayDate != "" {
		return []string{dayDate}
	}
	return nil
}

func runDayShow(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	date, err := a.resolveDate(dateArgs(args))
	if err != nil {
		return err
	}
	page, err := a.pages.Entry(context.Background(), a.owner, date)
	if err != nil {
		return err
	}

	var f *calendar.Formatter
	if dayLinks {
		f = a.format
	}
	return ui.NewPageWriter(os.Stdout, dayRaw).Print(pageMarkdown(page, f))
}

// editPage loads the --date page, applies edit and saves it.
func editPage(edit func(e *journal.DailyEntry) error) (journal.DailyEntry, error) {
	a, err := openApp()
	if err != nil {
		return journal.DailyEntry{}, err
	}
	defer a.Close()

	date, err := a.resolveDate(dateArgs(nil))
	if err != nil {
		return journal.DailyEntry{}, err
	}
	ctx := context.Background()
	page, err := a.pages.Entry(ctx, a.owner, date)
	if err != nil {
		return journal.DailyEntry{}, err
	}
	if err := edit(&page); err != nil {
		return journal.DailyEntry{}, err
	}
	return a.pages.Save(ctx, a.owner, page)
}

func parseHalf(s string) (journal.Half, error) {
	h, ok := journal.ParseHalf(s)
	if !ok {
		return "", fmt.Errorf("unknown half %q (use manha or tarde)", s)
	}
	return h, nil
}

func runDaySet(_ *cobra.Command, args []string) error {
	half, err := parseHalf(args[0])
	if err != nil {
		return err
	}
	slot := strings.TrimSpace(args[1])
	activity := strings.Join(args[2:], " ")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	date, err := a.resolveDate(dateArgs(nil))
	if err != nil {
		return err
	}
	if _, err := a.pages.SetSlot(context.Background(), a.owner, date, half, slot, activity); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("%s %s  %s", date, calendar.ParseSlot(slot), activity))
	fmt.Printf("  %s\n", ui.Muted.Render(a.format.Link(activity, date, slot)))
	return nil
}

func runDayClear(_ *cobra.Command, args []string) error {
	half, err := parseHalf(args[0])
	if err != nil {
		return err
	}
	page, err := editPage(func(e *journal.DailyEntry) error {
		sched := e.ScheduleFor(half)
		if _, ok := sched[args[1]]; !ok {
			return fmt.Errorf("slot %q is already empty", args[1])
		}
		delete(sched, args[1])
		return nil
	})
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("%s %s cleared", page.Date, args[1]))
	return nil
}

func runDayMessage(_ *cobra.Command, args []string) error {
	page, err := editPage(func(e *journal.DailyEntry) error {
		e.DayMessage = strings.Join(args, " ")
		return nil
	})
	if err != nil {
		return err
	}
	ui.Ok("Mensagem do dia salva em " + page.Date)
	return nil
}

func runDayNote(_ *cobra.Command, args []string) error {
	page, err := editPage(func(e *journal.DailyEntry) error {
		line := strings.Join(args, " ")
		if e.Notes == "" {
			e.Notes = line
		} else {
			e.Notes += "\n" + line
		}
		return nil
	})
	if err != nil {
		return err
	}
	ui.Ok("Nota adicionada em " + page.Date)
	return nil
}

// setNth writes text at 1-based position n of list, growing it to three.
func setNth(list []string, pos, text string) ([]string, error) {
	n, err := strconv.Atoi(pos)
	if err != nil || n < 1 || n > 3 {
		return nil, fmt.Errorf("position must be 1, 2 or 3, got %q", pos)
	}
	for len(list) < 3 {
		list = append(list, "")
	}
	list[n-1] = text
	return list, nil
}

func runDayPriority(_ *cobra.Command, args []string) error {
	page, err := editPage(func(e *journal.DailyEntry) error {
		list, err := setNth(e.MainPriorities, args[0], strings.Join(args[1:], " "))
		e.MainPriorities = list
		return err
	})
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Prioridade %s salva em %s", args[0], page.Date))
	return nil
}

func runDayPerson(_ *cobra.Command, args []string) error {
	page, err := editPage(func(e *journal.DailyEntry) error {
		list, err := setNth(e.PeopleToConnect, args[0], strings.Join(args[1:], " "))
		e.PeopleToConnect = list
		return err
	})
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Pessoa %s salva em %s", args[0], page.Date))
	return nil
}

func runDayTask(_ *cobra.Command, args []string) error {
	page, err := editPage(func(e *journal.DailyEntry) error {
		task := strings.Join(args, " ")
		for i, t := range e.TasksToDo {
			if strings.TrimSpace(t) == "" {
				e.TasksToDo[i] = task
				return nil
			}
		}
		e.TasksToDo = append(e.TasksToDo, task)
		return nil
	})
	if err != nil {
		return err
	}
	ui.Ok("Tarefa adicionada em " + page.Date)
	return nil
}

func runDayAnswer(_ *cobra.Command, args []string) error {
	q, ritual, ok := journal.LookupQuestion(args[0])
	if !ok {
		return fmt.Errorf("unknown question %q (run %s)", args[0], ui.Accent.Render("agenda day questions"))
	}
	page, err := editPage(func(e *journal.DailyEntry) error {
		e.Answers(ritual)[q.Key] = strings.Join(args[1:], " ")
		return nil
	})
	if err != nil {
		return err
	}
	ui.Ok(q.Text)
	fmt.Println(ui.Muted.Render("  salvo em " + page.Date))
	return nil
}

func runDayQuestions(_ *cobra.Command, _ []string) error {
	ui.Header(ui.IconSun + "Ritual da manhã")
	for _, q := range journal.MorningQuestions {
		ui.Kv(q.Key, q.Text)
	}
	ui.Header(ui.IconMoon + " Reflexão da noite")
	for _, q := range journal.EveningQuestions {
		ui.Kv(q.Key, q.Text)
	}
	fmt.Println()
	return nil
}

// pageMarkdown lays out a daily page as markdown. A non-nil f adds a calendar
// link to every populated slot.
func pageMarkdown(e journal.DailyEntry, f *calendar.Formatter) string {
	var b strings.Builder
	heading := e.Date
	if t, err := time.Parse(journal.DateLayout, e.Date); err == nil {
		heading = printout.LongDate(t)
	}
	fmt.Fprintf(&b, "# %s\n\n", heading)
	if e.DayMessage != "" {
		fmt.Fprintf(&b, "> %s\n\n", e.DayMessage)
	}

	list := func(title string, items []string, numbered bool) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		n := 0
		for _, it := range items {
			if strings.TrimSpace(it) == "" {
				continue
			}
			n++
			if numbered {
				fmt.Fprintf(&b, "%d. %s\n", n, it)
			} else {
				fmt.Fprintf(&b, "- %s\n", it)
			}
		}
		if n == 0 {
			b.WriteString("_vazio_\n")
		}
		b.WriteString("\n")
	}
	list("Prioridades", e.MainPriorities, true)
	list("Tarefas", e.TasksToDo, false)
	list("Pessoas para conectar", e.PeopleToConnect, false)

	schedule := func(title string, h journal.Half, sched journal.Schedule) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		keys := sched.Keys(h.Slots())
		n := 0
		for _, slot := range keys {
			activity := strings.TrimSpace(sched[slot])
			if activity == "" {
				continue
			}
			n++
			line := fmt.Sprintf("- **%s** %s", calendar.ParseSlot(slot), activity)
			if f != nil {
				line += fmt.Sprintf(" ([agendar](%s))", f.Link(activity, e.Date, slot))
			}
			b.WriteString(line + "\n")
		}
		if n == 0 {
			b.WriteString("_vazio_\n")
		}
		b.WriteString("\n")
	}
	schedule("Manhã", journal.Morning, e.MorningSchedule)
	schedule("Tarde", journal.Afternoon, e.AfternoonSchedule)

	answers := func(title string, qs []journal.Question, given map[string]string) {
		written := false
		for _, q := range qs {
			if a := strings.TrimSpace(given[q.Key]); a != "" {
				if !written {
					fmt.Fprintf(&b, "## %s\n\n", title)
					written = true
				}
				fmt.Fprintf(&b, "**%s**\n%s\n\n", q.Text, a)
			}
		}
	}
	answers("Ritual da manhã", journal.MorningQuestions, e.MorningRitual)
	answers("Reflexão da noite", journal.EveningQuestions, e.EveningReflection)

	if strings.TrimSpace(e.Notes) != "" {
		fmt.Fprintf(&b, "## Notas\n\n%s\n", e.Notes)
	}
	return b.String()
}
