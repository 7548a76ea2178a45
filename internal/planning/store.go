package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/rnwolfe/agenda/internal/entity"
)

const (
	WeeklyCollection  = "weekly_plannings"
	MonthlyCollection = "monthly_visions"
	FutureCollection  = "future_visions"
)

// Store persists planning pages.
type Store struct {
	weeks  *entity.Collection[WeeklyPlanning]
	months *entity.Collection[MonthlyVision]
	future *entity.Collection[FutureVision]
}

// NewStore creates a planning store on es.
func NewStore(es *entity.Store) *Store {
	return &Store{
		weeks:  entity.NewCollection[WeeklyPlanning](es, WeeklyCollection, "week_start_date"),
		months: entity.NewCollection[MonthlyVision](es, MonthlyCollection, "month"),
		future: entity.NewCollection[FutureVision](es, FutureCollection, ""),
	}
}

// Week returns the plan of the week containing date, or a blank plan.
func (s *Store) Week(ctx context.Context, owner, date string) (WeeklyPlanning, error) {
	start, err := WeekOf(date)
	if err != nil {
		return WeeklyPlanning{}, err
	}
	item, ok, err := s.weeks.First(ctx, entity.Filter{Owner: owner, Eq: map[string]any{"week_start_date": start}})
	if err != nil {
		return WeeklyPlanning{}, fmt.Errorf("loading week %s: %w", start, err)
	}
	if !ok {
		return WeeklyPlanning{WeekStartDate: start}, nil
	}
	w := item.Value
	w.ID = item.ID
	return w, nil
}

// SaveWeek creates or updates a weekly plan. WeekStartDate is normalized to
// the Monday of its week.
func (s *Store) SaveWeek(ctx context.Context, owner string, w WeeklyPlanning) (WeeklyPlanning, error) {
	existing, err := s.Week(ctx, owner, w.WeekStartDate)
	if err != nil {
		return WeeklyPlanning{}, err
	}
	w.WeekStartDate = existing.WeekStartDate
	if w.ID == "" {
		w.ID = existing.ID
	}
	item, err := save(ctx, s.weeks, owner, w.ID, w)
	if err != nil {
		return WeeklyPlanning{}, fmt.Errorf("saving week %s: %w", w.WeekStartDate, err)
	}
	saved := item.Value
	saved.ID = item.ID
	return saved, nil
}

// Month returns the vision for month ("YYYY-MM"), or a blank one.
func (s *Store) Month(ctx context.Context, owner, month string) (MonthlyVision, error) {
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return MonthlyVision{}, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	item, ok, err := s.months.First(ctx, entity.Filter{Owner: owner, Eq: map[string]any{"month": month}})
	if err != nil {
		return MonthlyVision{}, fmt.Errorf("loading month %s: %w", month, err)
	}
	if !ok {
		return NewMonthlyVision(month), nil
	}
	v := item.Value
	v.ID = item.ID
	if len(v.MajorProjects) == 0 {
		v.MajorProjects = []Project{{}}
	}
	if len(v.MajorEvents) == 0 {
		v.MajorEvents = []MajorEvent{{}}
	}
	return v, nil
}

// SaveMonth creates or updates a monthly vision.
func (s *Store) SaveMonth(ctx context.Context, owner string, v MonthlyVision) (MonthlyVision, error) {
	existing, err := s.Month(ctx, owner, v.Month)
	if err != nil {
		return MonthlyVision{}, err
	}
	if v.ID == "" {
		v.ID = existing.ID
	}
	item, err := save(ctx, s.months, owner, v.ID, v)
	if err != nil {
		return MonthlyVision{}, fmt.Errorf("saving month %s: %w", v.Month, err)
	}
	saved := item.Value
	saved.ID = item.ID
	return saved, nil
}

// Future returns the owner's future vision, or a blank one.
func (s *Store) Future(ctx context.Context, owner string) (FutureVision, error) {
	item, ok, err := s.future.First(ctx, entity.Filter{Owner: owner})
	if err != nil {
		return FutureVision{}, fmt.Errorf("loading future vision: %w", err)
	}
	if !ok {
		return NewFutureVision(), nil
	}
	v := item.Value
	v.ID = item.ID
	if len(v.OneYearGoals) == 0 {
		v.OneYearGoals = []Goal{{}}
	}
	if len(v.ThreeYearGoals) == 0 {
		v.ThreeYearGoals = []Goal{{}}
	}
	return v, nil
}

// SaveFuture creates or updates the owner's future vision.
func (s *Store) SaveFuture(ctx context.Context, owner string, v FutureVision) (FutureVision, error) {
	if v.ID == "" {
		existing, err := s.Future(ctx, owner)
		if err != nil {
			return FutureVision{}, err
		}
		v.ID = existing.ID
	}
	item, err := save(ctx, s.future, owner, v.ID, v)
	if err != nil {
		return FutureVision{}, fmt.Errorf("saving future vision: %w", err)
	}
	saved := item.Value
	saved.ID = item.ID
	return saved, nil
}

func save[T any](ctx context.Context, c *entity.Collection[T], owner, id string, v T) (entity.Item[T], error) {
	if id == "" {
		return c.Create(ctx, owner, v)
	}
	return c.Update(ctx, id, v)
}
