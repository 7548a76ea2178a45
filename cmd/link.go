package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rnwolfe/agenda/internal/calendar"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/spf13/cobra"
)

var (
	linkDate string
	linkSlot string
	linkAll  bool
)

var linkCmd = &cobra.Command{
	Use:   "link [label...]",
	Short: "Print a Google Calendar link for an event",
	Long: `Print a link that opens Google Calendar with a 30 minute event pre-filled.

With --all, print one link for every populated slot of the page instead.`,
	Example: `  agenda link Caminhada --slot 7:30
  agenda link --all --date 2026-10-20`,
	RunE: runLink,
}

func init() {
	linkCmd.Flags().StringVarP(&linkDate, "date", "d", "", "Event date (default today)")
	linkCmd.Flags().StringVarP(&linkSlot, "slot", "s", "", "Slot label such as 7:30 or 2PM (default 9AM)")
	linkCmd.Flags().BoolVarP(&linkAll, "all", "a", false, "Print links for every populated slot of the page")
}

func runLink(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var dateArg []string
	if linkDate != "" {
		dateArg = []string{linkDate}
	}
	date, err := a.resolveDate(dateArg)
	if err != nil {
		return err
	}

	if !linkAll {
		fmt.Println(a.format.Link(strings.Join(args, " "), date, linkSlot))
		return nil
	}

	page, err := a.pages.Entry(context.Background(), a.owner, date)
	if err != nil {
		return err
	}
	events := calendar.Events(page)
	if len(events) == 0 {
		ui.Inf("Nenhum horário preenchido em " + date)
		return nil
	}
	for _, ev := range events {
		ui.Slot(calendar.ParseSlot(ev.Slot).String(), ev.Label)
		fmt.Printf("  %s\n", ui.Muted.Render(a.format.LinkFor(ev)))
	}
	return nil
}
