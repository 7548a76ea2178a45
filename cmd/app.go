package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rnwolfe/agenda/internal/calendar"
	"github.com/rnwolfe/agenda/internal/config"
	"github.com/rnwolfe/agenda/internal/entity"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/logger"
	"github.com/rnwolfe/agenda/internal/planning"
	"github.com/rnwolfe/agenda/internal/store"
	"github.com/rs/zerolog"
)

// app is everything a journal command needs, opened from the user's config.
type app struct {
	cfg      *config.Config
	db       *store.DB
	entities *entity.Store
	pages    *journal.Store
	plans    *planning.Store
	format   *calendar.Formatter
	loc      *time.Location
	owner    string
	log      zerolog.Logger
	now      func() time.Time
}

// openApp loads config and opens the store. Callers must Close the result.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	log := logger.Console(os.Stderr, cfg.Log.Level)
	es := entity.NewStore(db)
	return &app{
		cfg:      cfg,
		db:       db,
		entities: es,
		pages:    journal.NewStore(es),
		plans:    planning.NewStore(es),
		format:   calendar.NewFormatter(loc, log),
		loc:      loc,
		owner:    cfg.Owner(),
		log:      log,
		now:      time.Now,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// today is the current date in the configured timezone.
func (a *app) today() time.Time {
	return a.now().In(a.loc)
}

// resolveDate returns args[0] when present, else today's date. Relative names
// "hoje", "ontem" and "amanha" are accepted along with YYYY-MM-DD.
func (a *app) resolveDate(args []string) (string, error) {
	if len(args) == 0 {
		return a.today().Format(journal.DateLayout), nil
	}
	switch args[0] {
	case "hoje", "today":
		return a.today().Format(journal.DateLayout), nil
	case "ontem", "yesterday":
		return a.today().AddDate(0, 0, -1).Format(journal.DateLayout), nil
	case "amanha", "amanhã", "tomorrow":
		return a.today().AddDate(0, 0, 1).Format(journal.DateLayout), nil
	}
	if err := journal.ValidateDate(args[0]); err != nil {
		return "", err
	}
	return args[0], nil
}
