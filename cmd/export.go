package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/planning"
	"github.com/rnwolfe/agenda/internal/printout"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/spf13/cobra"
)

var (
	exportWeek      bool
	exportOutput    string
	exportLandscape bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export pages to calendars, HTML or PDF",
}

var exportICSCmd = &cobra.Command{
	Use:   "ics [date]",
	Short: "Export the schedule as an iCalendar file",
	Long: `Write every populated slot of the page as a 30 minute event in an .ics
document that any calendar app can import. With --week, export the whole
Monday-to-Sunday week containing date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExportICS,
}

var exportHTMLCmd = &cobra.Command{
	Use:   "html [date]",
	Short: "Render the printable page as HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExportHTML,
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf [date]",
	Short: "Print the page to PDF with headless Chrome",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExportPDF,
}

func init() {
	for _, c := range []*cobra.Command{exportICSCmd, exportHTMLCmd, exportPDFCmd} {
		c.Flags().BoolVarP(&exportWeek, "week", "w", false, "Export the week containing date")
		c.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout, or agenda-<date>.pdf for pdf)")
		exportCmd.AddCommand(c)
	}
	exportPDFCmd.Flags().BoolVar(&exportLandscape, "landscape", false, "Landscape orientation")
}

// exportSet is the pages selected by the date argument and --week.
type exportSet struct {
	date    string
	plan    planning.WeeklyPlanning
	entries []journal.DailyEntry
}

func loadExportSet(ctx context.Context, a *app, args []string) (exportSet, error) {
	date, err := a.resolveDate(args)
	if err != nil {
		return exportSet{}, err
	}
	if !exportWeek {
		page, err := a.pages.Entry(ctx, a.owner, date)
		if err != nil {
			return exportSet{}, err
		}
		return exportSet{date: date, entries: []journal.DailyEntry{page}}, nil
	}

	plan, err := a.plans.Week(ctx, a.owner, date)
	if err != nil {
		return exportSet{}, err
	}
	start, err := time.Parse(journal.DateLayout, plan.WeekStartDate)
	if err != nil {
		return exportSet{}, fmt.Errorf("parsing week start: %w", err)
	}
	end := start.AddDate(0, 0, 6).Format(journal.DateLayout)
	entries, err := a.pages.Range(ctx, a.owner, plan.WeekStartDate, end)
	if err != nil {
		return exportSet{}, err
	}
	return exportSet{date: plan.WeekStartDate, plan: plan, entries: entries}, nil
}

// writeOutput writes data to exportOutput, or stdout when it is empty or "-".
func writeOutput(data []byte, what string) error {
	if exportOutput == "" || exportOutput == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	ui.Ok(fmt.Sprintf("%s salvo em %s", what, exportOutput))
	return nil
}

func runExportICS(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	set, err := loadExportSet(context.Background(), a, args)
	if err != nil {
		return err
	}
	return writeOutput([]byte(a.format.Document(set.entries...)), "Calendário")
}

func renderHTML(w io.Writer, a *app, set exportSet) error {
	r, err := printout.New(a.format)
	if err != nil {
		return err
	}
	if exportWeek {
		return r.Weekly(w, set.plan, set.entries)
	}
	return r.Daily(w, set.entries...)
}

func runExportHTML(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	set, err := loadExportSet(context.Background(), a, args)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := renderHTML(&buf, a, set); err != nil {
		return err
	}
	return writeOutput(buf.Bytes(), "HTML")
}

func runExportPDF(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	set, err := loadExportSet(ctx, a, args)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := renderHTML(&buf, a, set); err != nil {
		return err
	}

	if exportOutput == "" {
		exportOutput = "agenda-" + set.date + ".pdf"
	}
	ui.Inf("Gerando PDF com o Chrome...")
	pdf, err := printout.PDF(ctx, buf.Bytes(), printout.PDFOptions{
		ChromePath: a.cfg.Export.ChromePath,
		Timeout:    time.Duration(a.cfg.Export.TimeoutSeconds) * time.Second,
		Landscape:  exportLandscape,
	})
	if err != nil {
		return err
	}
	return writeOutput(pdf, "PDF")
}
