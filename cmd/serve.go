package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rnwolfe/agenda/internal/logger"
	"github.com/rnwolfe/agenda/internal/meditation"
	"github.com/rnwolfe/agenda/internal/reminder"
	"github.com/rnwolfe/agenda/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveListen     string
	serveNoReminder bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal over a JSON API",
	Long: `Run the HTTP API on the configured address, together with the evening
reminder that checks whether today's page was written.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Listen address (default server.listen)")
	serveCmd.Flags().BoolVar(&serveNoReminder, "no-reminder", false, "Do not schedule the evening reminder")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	log := logger.New("agenda", a.cfg.Log.Level)
	a.format.Log = log

	catalog, err := meditation.Catalog()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !serveNoReminder {
		r := reminder.New(a.pages, a.db, a.owner, a.loc, log)
		spec := a.cfg.Server.ReminderCron
		if spec == "" {
			spec = reminder.DefaultSchedule
		}
		if err := r.Start(spec); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			r.Stop(stopCtx)
		}()
	}

	srv := server.New(server.Deps{
		Journal:     a.pages,
		Planning:    a.plans,
		Formatter:   a.format,
		Meditations: catalog,
		DB:          a.db.Conn(),
		Owner:       a.owner,
		Location:    a.loc,
		Log:         log,
	})

	addr := serveListen
	if addr == "" {
		addr = a.cfg.Server.Listen
	}
	if err := server.ListenAndServe(ctx, addr, srv, log); err != nil {
		return fmt.Errorf("serving %s: %w", addr, err)
	}
	return nil
}
