package cmd

import (
	"fmt"

	"github.com/rnwolfe/agenda/internal/meditation"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/spf13/cobra"
)

var meditateCmd = &cobra.Command{
	Use:   "meditate [id]",
	Short: "Play a guided meditation",
	Long: `Play a guided meditation in the terminal, one step at a time.

Keys: space pauses and resumes, r restarts, q quits.
Run without an id to list the catalog.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMeditate,
}

var meditateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the guided meditations",
	Args:  cobra.NoArgs,
	RunE:  runMeditateList,
}

func init() {
	meditateCmd.AddCommand(meditateListCmd)
}

func runMeditate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runMeditateList(cmd, args)
	}

	catalog, err := meditation.Catalog()
	if err != nil {
		return err
	}
	m, ok := meditation.Find(catalog, args[0])
	if !ok {
		return fmt.Errorf("no meditation %q (run %s)", args[0], ui.Accent.Render("agenda meditate list"))
	}
	if !ui.IsStdinTTY() || !ui.IsStdoutTTY() {
		return fmt.Errorf("the meditation player needs an interactive terminal")
	}
	return meditation.Play(m)
}

func runMeditateList(_ *cobra.Command, _ []string) error {
	catalog, err := meditation.Catalog()
	if err != nil {
		return err
	}

	ui.Header(ui.IconLotus + " Meditações")
	fmt.Println()
	for _, m := range catalog {
		fmt.Printf("  %s  %s %s\n",
			ui.KeyStyle.Render(fmt.Sprintf("%-24s", m.ID)),
			m.Title,
			ui.Muted.Render(fmt.Sprintf("(%d min, %s)", m.Duration, m.Type)),
		)
		if m.Description != "" {
			fmt.Printf("  %s  %s\n", fmt.Sprintf("%-24s", ""), ui.Muted.Render(m.Description))
		}
	}
	ui.Tip(fmt.Sprintf("comece com %s", ui.Accent.Render("agenda meditate "+catalog[0].ID)))
	fmt.Println()
	return nil
}
