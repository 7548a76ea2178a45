package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Item is a typed record.
type Item[T any] struct {
	ID        string
	Owner     string
	Value     T
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Collection is a typed view over one named collection. T must round-trip
// through encoding/json.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection binds a typed collection. dateField names the JSON field
// mirrored into the indexed date column ("" for none).
func NewCollection[T any](s *Store, name, dateField string) *Collection[T] {
	if dateField != "" {
		s.IndexDate(name, dateField)
	}
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Create stores v as a new record.
func (c *Collection[T]) Create(ctx context.Context, owner string, v T) (Item[T], error) {
	data, err := toMap(v)
	if err != nil {
		return Item[T]{}, err
	}
	rec, err := c.store.Create(ctx, c.name, owner, data)
	if err != nil {
		return Item[T]{}, err
	}
	return fromRecord[T](rec)
}

// Update merges the fields of v into the existing record.
func (c *Collection[T]) Update(ctx context.Context, id string, v T) (Item[T], error) {
	data, err := toMap(v)
	if err != nil {
		return Item[T]{}, err
	}
	rec, err := c.store.Update(ctx, id, data)
	if err != nil {
		return Item[T]{}, err
	}
	return fromRecord[T](rec)
}

// Filter returns matching items.
func (c *Collection[T]) Filter(ctx context.Context, f Filter) ([]Item[T], error) {
	recs, err := c.store.Filter(ctx, c.name, f)
	if err != nil {
		return nil, err
	}
	items := make([]Item[T], 0, len(recs))
	for _, rec := range recs {
		it, err := fromRecord[T](rec)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// First returns the first matching item, if any.
func (c *Collection[T]) First(ctx context.Context, f Filter) (Item[T], bool, error) {
	items, err := c.Filter(ctx, f)
	if err != nil || len(items) == 0 {
		return Item[T]{}, false, err
	}
	return items[0], true, nil
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("record must encode as a JSON object: %w", err)
	}
	return m, nil
}

func fromRecord[T any](rec Record) (Item[T], error) {
	raw, err := json.Marshal(rec.Data)
	if err != nil {
		return Item[T]{}, fmt.Errorf("encoding record %s: %w", rec.ID, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return Item[T]{}, fmt.Errorf("decoding record %s: %w", rec.ID, err)
	}
	return Item[T]{
		ID:        rec.ID,
		Owner:     rec.Owner,
		Value:     v,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
