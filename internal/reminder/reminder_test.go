package reminder

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rnwolfe/agenda/internal/config"
	"github.com/rnwolfe/agenda/internal/entity"
	"github.com/rnwolfe/agenda/internal/journal"
	"github.com/rnwolfe/agenda/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Reminder, *journal.Store, *store.DB, *bytes.Buffer) {
	t.Helper()
	db, err := store.Open(config.StoreConfig{DSN: filepath.Join(t.TempDir(), "reminder.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pages := journal.NewStore(entity.NewStore(db))
	var logs bytes.Buffer
	r := New(pages, db, "ana", time.UTC, zerolog.New(&logs))
	return r, pages, db, &logs
}

func TestCheck_MissingPage(t *testing.T) {
	r, pages, db, logs := setup(t)
	ctx := context.Background()

	_, err := pages.Save(ctx, "ana", journal.NewEntry("2026-10-18"))
	require.NoError(t, err)

	st, err := r.Check(ctx, time.Date(2026, 10, 19, 21, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, st.Written)
	assert.Equal(t, "2026-10-19", st.Date)
	assert.Equal(t, 1, st.Streak.Current, "yesterday still counts")
	assert.Contains(t, logs.String(), "still blank")

	v, err := db.GetKV(KeyStreakCurrent)
	require.NoError(t, err)
	assert.Equal(t, "1", v)
	v, err = db.GetKV(KeyLastCheck)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", v)
}

func TestCheck_WrittenPage(t *testing.T) {
	r, pages, db, logs := setup(t)
	ctx := context.Background()

	for _, d := range []string{"2026-10-17", "2026-10-18", "2026-10-19"} {
		_, err := pages.Save(ctx, "ana", journal.NewEntry(d))
		require.NoError(t, err)
	}

	st, err := r.Check(ctx, time.Date(2026, 10, 19, 21, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, st.Written)
	assert.Equal(t, 3, st.Streak.Current)
	assert.Equal(t, 3, st.Streak.Longest)
	assert.NotContains(t, logs.String(), "still blank")

	v, _ := db.GetKV(KeyStreakLongest)
	assert.Equal(t, "3", v)
}

func TestCheck_UsesLocation(t *testing.T) {
	r, pages, _, _ := setup(t)
	r.loc = time.FixedZone("BRT", -3*60*60)
	ctx := context.Background()

	_, err := pages.Save(ctx, "ana", journal.NewEntry("2026-10-19"))
	require.NoError(t, err)

	// 01:00 UTC on the 20th is still the evening of the 19th in BRT
	st, err := r.Check(ctx, time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", st.Date)
	assert.True(t, st.Written)
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule(DefaultSchedule))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("every evening"))
}

func TestStartStop(t *testing.T) {
	r, _, _, _ := setup(t)

	assert.Error(t, r.Start("nope"))
	require.NoError(t, r.Start(DefaultSchedule))
	assert.Error(t, r.Start(DefaultSchedule), "second start must fail")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
	r.Stop(ctx)
}
