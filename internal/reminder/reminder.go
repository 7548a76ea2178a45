// Package reminder runs the evening check that nudges the owner when the
// day's page is still blank and keeps the current streak in the kv table.
package reminder

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultSchedule runs the check at 21:00 every day.
const DefaultSchedule = "0 21 * * *"

// kv keys written by Check.
const (
	KeyLastCheck     = "reminder.last_check"
	KeyStreakCurrent = "streak.current"
	KeyStreakLongest = "streak.longest"
)

// KV is the slice of the store the reminder writes to.
type KV interface {
	SetKV(key, value, updatedAt string) error
}

// Status is the outcome of one check.
type Status struct {
	Date    string             `json:"date"`
	Written bool               `json:"written"`
	Streak  journal.StreakInfo `json:"streak"`
}

// Reminder checks one owner's journal.
type Reminder struct {
	pages *journal.Store
	kv    KV
	owner string
	loc   *time.Location
	log   zerolog.Logger
	now   func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// New creates a Reminder for owner. Dates are computed in loc.
func New(pages *journal.Store, kv KV, owner string, loc *time.Location, log zerolog.Logger) *Reminder {
	if loc == nil {
		loc = time.Local
	}
	return &Reminder{
		pages: pages,
		kv:    kv,
		owner: owner,
		loc:   loc,
		log:   log.With().Str("component", "reminder").Logger(),
		now:   time.Now,
	}
}

// ValidateSchedule checks a standard five-field cron expression.
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return nil
}

// Check looks at the page for now's date, records the streak and logs a
// nudge when the page is missing.
func (r *Reminder) Check(ctx context.Context, now time.Time) (Status, error) {
	local := now.In(r.loc)
	date := local.Format(journal.DateLayout)

	dates, err := r.pages.Dates(ctx, r.owner)
	if err != nil {
		return Status{}, fmt.Errorf("reminder: %w", err)
	}
	st := Status{Date: date, Streak: journal.Summarize(dates, local)}
	for _, d := range dates {
		if d == date {
			st.Written = true
			break
		}
	}

	stamp := now.UTC().Format(time.RFC3339)
	for key, value := range map[string]string{
		KeyLastCheck:     date,
		KeyStreakCurrent: strconv.Itoa(st.Streak.Current),
		KeyStreakLongest: strconv.Itoa(st.Streak.Longest),
	} {
		if err := r.kv.SetKV(key, value, stamp); err != nil {
			return st, fmt.Errorf("reminder: %w", err)
		}
	}

	if st.Written {
		r.log.Info().Str("date", date).Int("streak", st.Streak.Current).Msg("page written today")
	} else {
		r.log.Warn().Str("date", date).Int("streak", st.Streak.Current).
			Msg("today's page is still blank, take a few minutes to reflect")
	}
	return st, nil
}

// Start schedules Check on spec. It returns an error for an invalid spec or
// when already started.
func (r *Reminder) Start(spec string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return fmt.Errorf("reminder already started")
	}

	c := cron.New(cron.WithLocation(r.loc))
	if _, err := c.AddFunc(spec, r.run); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	c.Start()
	r.cron = c
	r.log.Info().Str("schedule", spec).Msg("reminder scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running check to finish or ctx
// to expire.
func (r *Reminder) Stop(ctx context.Context) {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c == nil {
		return
	}
	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
	}
}

func (r *Reminder) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := r.Check(ctx, r.now()); err != nil {
		r.log.Error().Stack().Err(err).Msg("reminder check failed")
	}
}
