package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your journaling streak",
	Long: `Show how many consecutive days you have written a page.

A streak stays alive through today as long as yesterday was written.`,
	Args: cobra.NoArgs,
	RunE: runStreak,
}

func runStreak(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	now := a.today()
	dates, err := a.pages.Dates(ctx, a.owner)
	if err != nil {
		return err
	}
	info := journal.Summarize(dates, now)

	ui.Header(ui.IconFire + " Sequência")
	fmt.Println()
	ui.Kv("Atual", ui.StreakBadge(info.Current))
	ui.Kv("Recorde", fmt.Sprintf("%d dias", info.Longest))
	ui.Kv("Páginas", fmt.Sprintf("%d", len(dates)))
	fmt.Println()
	fmt.Println("  " + streakStrip(dates, now, 14))

	today := now.Format(journal.DateLayout)
	written := false
	for _, d := range dates {
		if d == today {
			written = true
			break
		}
	}
	if !written && info.Current > 0 {
		ui.Tip(fmt.Sprintf("escreva hoje para manter a sequência: %s", ui.Accent.Render("agenda day")))
	}
	fmt.Println()
	return nil
}

// streakStrip draws the last n days, oldest first, one mark per day.
func streakStrip(dates []string, now time.Time, n int) string {
	written := make(map[string]bool, len(dates))
	for _, d := range dates {
		written[d] = true
	}
	var out string
	for i := n - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format(journal.DateLayout)
		if written[d] {
			out += ui.Success.Render("■")
		} else {
			out += ui.Muted.Render("□")
		}
	}
	return out
}
