package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rnwolfe/agenda/internal/entity"
)

// Collection is the entity collection daily pages live in.
const Collection = "daily_pages"

// Store handles daily page persistence.
type Store struct {
	pages *entity.Collection[DailyEntry]
}

// NewStore creates a new journal store.
func NewStore(es *entity.Store) *Store {
	return &Store{pages: entity.NewCollection[DailyEntry](es, Collection, "date")}
}

// ValidateDate checks that date is a real YYYY-MM-DD calendar day.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return nil
}

// Entry returns the page for date, or a blank page (empty ID) when none was
// saved yet.
func (s *Store) Entry(ctx context.Context, owner, date string) (DailyEntry, error) {
	if err := ValidateDate(date); err != nil {
		return DailyEntry{}, err
	}
	item, ok, err := s.pages.First(ctx, entity.Filter{Owner: owner, Eq: map[string]any{"date": date}})
	if err != nil {
		return DailyEntry{}, fmt.Errorf("loading entry %s: %w", date, err)
	}
	if !ok {
		return NewEntry(date), nil
	}
	e := item.Value
	e.ID = item.ID
	return e, nil
}

// Save creates or updates the page for e.Date.
func (s *Store) Save(ctx context.Context, owner string, e DailyEntry) (DailyEntry, error) {
	if err := ValidateDate(e.Date); err != nil {
		return DailyEntry{}, err
	}
	if e.ID == "" {
		existing, err := s.Entry(ctx, owner, e.Date)
		if err != nil {
			return DailyEntry{}, err
		}
		e.ID = existing.ID
	}

	var (
		item entity.Item[DailyEntry]
		err  error
	)
	if e.ID == "" {
		item, err = s.pages.Create(ctx, owner, e)
	} else {
		item, err = s.pages.Update(ctx, e.ID, e)
	}
	if err != nil {
		return DailyEntry{}, fmt.Errorf("saving entry %s: %w", e.Date, err)
	}
	saved := item.Value
	saved.ID = item.ID
	return saved, nil
}

// SetSlot writes activity into one schedule slot. A blank activity clears it.
func (s *Store) SetSlot(ctx context.Context, owner, date string, h Half, slot, activity string) (DailyEntry, error) {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return DailyEntry{}, fmt.Errorf("slot must not be empty")
	}
	e, err := s.Entry(ctx, owner, date)
	if err != nil {
		return DailyEntry{}, err
	}
	sched := e.ScheduleFor(h)
	if strings.TrimSpace(activity) == "" {
		delete(sched, slot)
	} else {
		sched[slot] = activity
	}
	return s.Save(ctx, owner, e)
}

// Dates returns every date with a saved page, ascending.
func (s *Store) Dates(ctx context.Context, owner string) ([]string, error) {
	items, err := s.pages.Filter(ctx, entity.Filter{Owner: owner})
	if err != nil {
		return nil, fmt.Errorf("listing entry dates: %w", err)
	}
	dates := make([]string, 0, len(items))
	for _, it := range items {
		dates = append(dates, it.Value.Date)
	}
	return dates, nil
}

// Range returns the saved pages between from and to, inclusive.
func (s *Store) Range(ctx context.Context, owner, from, to string) ([]DailyEntry, error) {
	items, err := s.pages.Filter(ctx, entity.Filter{
		Owner: owner,
		Range: map[string]entity.Range{"date": {Gte: from, Lte: to}},
	})
	if err != nil {
		return nil, fmt.Errorf("loading entries %s..%s: %w", from, to, err)
	}
	out := make([]DailyEntry, 0, len(items))
	for _, it := range items {
		e := it.Value
		e.ID = it.ID
		out = append(out, e)
	}
	return out, nil
}

// Streak computes the owner's streaks relative to now.
func (s *Store) Streak(ctx context.Context, owner string, now time.Time) (StreakInfo, error) {
	dates, err := s.Dates(ctx, owner)
	if err != nil {
		return StreakInfo{}, err
	}
	return Summarize(dates, now), nil
}
