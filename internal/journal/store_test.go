package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rnwolfe/agenda/internal/config"
	"github.com/rnwolfe/agenda/internal/entity"
	"github.com/rnwolfe/agenda/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.Open(config.StoreConfig{DSN: filepath.Join(t.TempDir(), "journal.db")})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(entity.NewStore(db))
}

func TestEntry_MissingReturnsBlankPage(t *testing.T) {
	s := newTestStore(t)

	e, err := s.Entry(context.Background(), "ana", "2026-10-19")
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.ID != "" {
		t.Fatalf("blank page should have no ID, got %q", e.ID)
	}
	if len(e.MainPriorities) != 3 {
		t.Fatalf("blank page should carry 3 priority lines, got %d", len(e.MainPriorities))
	}
}

func TestEntry_InvalidDate(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Entry(context.Background(), "ana", "19/10/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestSave_CreatesThenUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := NewEntry("2026-10-19")
	e.DayMessage = "Um passo de cada vez"
	saved, err := s.Save(ctx, "ana", e)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("saved entry should have an ID")
	}

	again := NewEntry("2026-10-19")
	again.Notes = "second save without ID"
	updated, err := s.Save(ctx, "ana", again)
	if err != nil {
		t.Fatalf("Save again: %v", err)
	}
	if updated.ID != saved.ID {
		t.Fatalf("second save created a new record: %s != %s", updated.ID, saved.ID)
	}

	dates, err := s.Dates(ctx, "ana")
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("expected one page, got %v", dates)
	}
}

func TestSetSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SetSlot(ctx, "ana", "2026-10-19", Morning, "7:30", "Caminhada"); err != nil {
		t.Fatalf("SetSlot: %v", err)
	}
	if _, err := s.SetSlot(ctx, "ana", "2026-10-19", Afternoon, "2", "Leitura"); err != nil {
		t.Fatalf("SetSlot: %v", err)
	}

	e, err := s.Entry(ctx, "ana", "2026-10-19")
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.MorningSchedule["7:30"] != "Caminhada" {
		t.Errorf("morning 7:30 = %q", e.MorningSchedule["7:30"])
	}
	if e.AfternoonSchedule["2"] != "Leitura" {
		t.Errorf("afternoon 2 = %q", e.AfternoonSchedule["2"])
	}

	cleared, err := s.SetSlot(ctx, "ana", "2026-10-19", Morning, "7:30", "  ")
	if err != nil {
		t.Fatalf("SetSlot clear: %v", err)
	}
	if _, ok := cleared.MorningSchedule["7:30"]; ok {
		t.Error("blank activity should clear the slot")
	}
}

func TestSetSlot_EmptySlot(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SetSlot(context.Background(), "ana", "2026-10-19", Morning, " ", "x"); err == nil {
		t.Fatal("expected error for empty slot")
	}
}

func TestRangeAndStreak(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2026-10-15", "2026-10-17", "2026-10-18", "2026-10-19"} {
		if _, err := s.Save(ctx, "ana", NewEntry(d)); err != nil {
			t.Fatalf("Save %s: %v", d, err)
		}
	}
	if _, err := s.Save(ctx, "bia", NewEntry("2026-10-16")); err != nil {
		t.Fatalf("Save bia: %v", err)
	}

	week, err := s.Range(ctx, "ana", "2026-10-16", "2026-10-19")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(week) != 3 {
		t.Fatalf("Range returned %d entries, want 3", len(week))
	}

	info, err := s.Streak(ctx, "ana", mustDate("2026-10-19"))
	if err != nil {
		t.Fatalf("Streak: %v", err)
	}
	if info.Current != 3 {
		t.Errorf("current = %d, want 3", info.Current)
	}
}

func TestScheduleKeys_Order(t *testing.T) {
	s := Schedule{"9": "a", "6AM": "b", "zz": "c", "13:15": "d"}
	got := s.Keys(MorningSlots)
	want := []string{"6AM", "9", "13:15", "zz"}
	if len(got) != len(want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys = %v, want %v", got, want)
		}
	}
}

func TestParseHalf(t *testing.T) {
	if h, ok := ParseHalf("Tarde"); !ok || h != Afternoon {
		t.Errorf("ParseHalf(Tarde) = %v, %v", h, ok)
	}
	if h, ok := ParseHalf("morning"); !ok || h != Morning {
		t.Errorf("ParseHalf(morning) = %v, %v", h, ok)
	}
	if _, ok := ParseHalf("noon"); ok {
		t.Error("ParseHalf(noon) should fail")
	}
}

func TestLookupQuestion(t *testing.T) {
	q, r, ok := LookupQuestion("wisdom_gained")
	if !ok || r != RitualEvening || q.Text == "" {
		t.Fatalf("LookupQuestion(wisdom_gained) = %+v, %v, %v", q, r, ok)
	}
	if _, _, ok := LookupQuestion("nope"); ok {
		t.Fatal("unknown key should not be found")
	}
}
