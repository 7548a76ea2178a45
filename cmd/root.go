package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rnwolfe/agenda/internal/config"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/tips"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/rnwolfe/agenda/internal/version"
	"github.com/spf13/cobra"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Agenda Reflexiva: your reflective daily planner",
	Long:  `agenda keeps a daily page, weekly and monthly plans, and exports your schedule to any calendar.`,
	RunE:  runDashboard,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			ui.DisableColor()
			return
		}
		ui.ApplyColorEnv()
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(meditateCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// runDashboard shows today's page at a glance when you just type `agenda`.
func runDashboard(_ *cobra.Command, _ []string) error {
	if !config.Initialized() {
		fmt.Println(ui.Greet("", 9))
		fmt.Println()
		fmt.Println("  Parece que é a sua primeira vez por aqui.")
		fmt.Println()
		fmt.Printf("  Rode %s para começar.\n", ui.Accent.Render("agenda init"))
		fmt.Println()
		return nil
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	now := a.today()
	fmt.Println(ui.Greet(a.cfg.User.Name, now.Hour()))
	fmt.Println()

	date := now.Format(journal.DateLayout)
	page, err := a.pages.Entry(ctx, a.owner, date)
	if err != nil {
		return err
	}
	streak, err := a.pages.Streak(ctx, a.owner, now)
	if err != nil {
		return err
	}

	status := ui.Muted.Render("em branco")
	if page.ID != "" {
		status = ui.Success.Render("escrita")
	}
	filled := page.MorningSchedule.Filled() + page.AfternoonSchedule.Filled()

	ui.Kv(ui.IconBook+" Hoje", date+"  "+status)
	ui.Kv(ui.IconCalendar+" Horários", fmt.Sprintf("%d preenchidos", filled))
	ui.Kv(ui.IconFire+" Sequência", ui.StreakBadge(streak.Current))
	if streak.Longest > streak.Current {
		ui.Kv(ui.IconStar+" Recorde", fmt.Sprintf("%d dias", streak.Longest))
	}
	if page.DayMessage != "" {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  “" + page.DayMessage + "”"))
	}

	if page.ID == "" {
		ui.Tip(fmt.Sprintf("`%s` abre a página de hoje.", ui.Accent.Render("agenda day")))
	} else {
		ui.Tip(tips.Daily(now))
	}
	fmt.Println(ui.Muted.Render("  agenda " + version.Short()))
	fmt.Println()
	return nil
}
