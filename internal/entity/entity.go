// Package entity stores named collections of JSON records (daily pages,
// weekly plannings, visions) in the agenda database and filters them by
// equality or range on any field.
package entity

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rnwolfe/agenda/internal/store"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Record is a single row of a collection.
type Record struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	Owner      string         `json:"owner"`
	Date       string         `json:"date"`
	Data       map[string]any `json:"data"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Range bounds a field inclusively. Empty bounds are open. Values compare as
// strings, so ISO dates order correctly.
type Range struct {
	Gte string
	Lte string
}

// Filter selects records of one collection. Owner "" matches any owner.
type Filter struct {
	Owner string
	Eq    map[string]any
	Range map[string]Range
}

// Store handles entity persistence.
type Store struct {
	db  *store.DB
	now func() time.Time

	mu         sync.RWMutex
	dateFields map[string]string
}

// NewStore creates a new entity store.
func NewStore(db *store.DB) *Store {
	return &Store{
		db:         db,
		now:        time.Now,
		dateFields: make(map[string]string),
	}
}

// SetClock replaces the timestamp source (tests).
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// IndexDate declares which data field of a collection is mirrored into the
// indexed date column. Filters on that field run in SQL.
func (s *Store) IndexDate(collection, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dateFields[collection] = field
}

func (s *Store) dateField(collection string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dateFields[collection]
}

func (s *Store) dateOf(collection string, data map[string]any) string {
	f := s.dateField(collection)
	if f == "" {
		return ""
	}
	v, _ := data[f].(string)
	return v
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// Create inserts a new record and returns it with its generated id.
func (s *Store) Create(ctx context.Context, collection, owner string, data map[string]any) (Record, error) {
	if collection == "" {
		return Record{}, fmt.Errorf("collection must not be empty")
	}
	if data == nil {
		data = map[string]any{}
	}
	now := s.timestamp()
	rec := Record{
		ID:         uuid.NewString(),
		Collection: collection,
		Owner:      owner,
		Date:       s.dateOf(collection, data),
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.insert(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("creating %s record: %w", collection, err)
	}
	return rec, nil
}

func (s *Store) insert(ctx context.Context, rec Record) error {
	raw, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("encoding data: %w", err)
	}
	_, err = s.db.Conn().ExecContext(ctx, s.db.Rebind(
		`INSERT INTO entities (id, collection, owner, date, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		rec.ID, rec.Collection, rec.Owner, rec.Date, string(raw),
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339),
	)
	return err
}

// Get returns a single record by id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.Conn().QueryRowContext(ctx, s.db.Rebind(
		`SELECT id, collection, owner, date, data, created_at, updated_at
		 FROM entities WHERE id = ?`), id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("getting record %s: %w", id, err)
	}
	return rec, nil
}

// Update shallow-merges patch into the record's data. Keys mapped to nil are
// removed.
func (s *Store) Update(ctx context.Context, id string, patch map[string]any) (Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	for k, v := range patch {
		if v == nil {
			delete(rec.Data, k)
			continue
		}
		rec.Data[k] = v
	}
	rec.Date = s.dateOf(rec.Collection, rec.Data)
	rec.UpdatedAt = s.timestamp()

	raw, err := json.Marshal(rec.Data)
	if err != nil {
		return Record{}, fmt.Errorf("encoding data: %w", err)
	}
	_, err = s.db.Conn().ExecContext(ctx, s.db.Rebind(
		`UPDATE entities SET data = ?, date = ?, updated_at = ? WHERE id = ?`),
		string(raw), rec.Date, rec.UpdatedAt.Format(time.RFC3339), id,
	)
	if err != nil {
		return Record{}, fmt.Errorf("updating record %s: %w", id, err)
	}
	return rec, nil
}

// Filter returns the records of collection matching f, ordered by date then
// creation time. Conditions on the collection's date field and the owner run
// in SQL; the rest are applied to the decoded data.
func (s *Store) Filter(ctx context.Context, collection string, f Filter) ([]Record, error) {
	query := `SELECT id, collection, owner, date, data, created_at, updated_at
		FROM entities WHERE collection = ?`
	args := []any{collection}

	if f.Owner != "" {
		query += ` AND owner = ?`
		args = append(args, f.Owner)
	}

	eq := f.Eq
	rng := f.Range
	if df := s.dateField(collection); df != "" {
		if v, ok := eq[df].(string); ok {
			query += ` AND date = ?`
			args = append(args, v)
			eq = without(eq, df)
		}
		if r, ok := rng[df]; ok {
			if r.Gte != "" {
				query += ` AND date >= ?`
				args = append(args, r.Gte)
			}
			if r.Lte != "" {
				query += ` AND date <= ?`
				args = append(args, r.Lte)
			}
			rng = without(rng, df)
		}
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := s.db.Conn().QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("filtering %s: %w", collection, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("filtering %s: %w", collection, err)
		}
		if matches(rec.Data, eq, rng) {
			out = append(out, rec)
		}
	}
	return out, rows.Err()
}

// All returns every record in every collection, for backups.
func (s *Store) All(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, collection, owner, date, data, created_at, updated_at
		 FROM entities ORDER BY collection ASC, date ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Restore upserts records by id inside one transaction.
func (s *Store) Restore(ctx context.Context, records []Record) error {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting restore: %w", err)
	}
	defer tx.Rollback()

	stmt := s.db.Rebind(
		`INSERT INTO entities (id, collection, owner, date, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   collection = excluded.collection,
		   owner = excluded.owner,
		   date = excluded.date,
		   data = excluded.data,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`)
	for _, rec := range records {
		raw, err := json.Marshal(rec.Data)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", rec.ID, err)
		}
		if _, err := tx.ExecContext(ctx, stmt,
			rec.ID, rec.Collection, rec.Owner, rec.Date, string(raw),
			rec.CreatedAt.UTC().Format(time.RFC3339), rec.UpdatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("restoring record %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var raw, createdStr, updatedStr string
	if err := row.Scan(&rec.ID, &rec.Collection, &rec.Owner, &rec.Date, &raw, &createdStr, &updatedStr); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(raw), &rec.Data); err != nil {
		return Record{}, fmt.Errorf("decoding record %s: %w", rec.ID, err)
	}
	if rec.Data == nil {
		rec.Data = map[string]any{}
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	return rec, nil
}

func matches(data map[string]any, eq map[string]any, rng map[string]Range) bool {
	for k, want := range eq {
		if !reflect.DeepEqual(data[k], normalize(want)) {
			return false
		}
	}
	for k, r := range rng {
		v, ok := data[k].(string)
		if !ok {
			return false
		}
		if r.Gte != "" && strings.Compare(v, r.Gte) < 0 {
			return false
		}
		if r.Lte != "" && strings.Compare(v, r.Lte) > 0 {
			return false
		}
	}
	return true
}

// normalize converts v to the shape encoding/json decodes into any, so that
// ints compare equal to stored float64 values.
func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func without[V any](m map[string]V, key string) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}
