package journal

import (
	"testing"
	"time"
)

func mustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeStreak_Empty(t *testing.T) {
	if got := ComputeStreak(nil, mustDate("2026-02-26")); got != 0 {
		t.Fatalf("ComputeStreak(nil) = %d, want 0", got)
	}
}

func TestComputeStreak_TodayOnly(t *testing.T) {
	now := mustDate("2026-02-26")
	if got := ComputeStreak([]string{"2026-02-26"}, now); got != 1 {
		t.Errorf("current streak = %d, want 1", got)
	}
}

func TestComputeStreak_YesterdayOnly_StillActive(t *testing.T) {
	now := mustDate("2026-02-26")
	if got := ComputeStreak([]string{"2026-02-25"}, now); got != 1 {
		t.Errorf("current streak = %d, want 1 (grace: wrote yesterday)", got)
	}
}

func TestComputeStreak_ConsecutiveThreeDays_Unordered(t *testing.T) {
	now := mustDate("2026-02-26")
	dates := []string{"2026-02-24", "2026-02-26", "2026-02-25"}
	if got := ComputeStreak(dates, now); got != 3 {
		t.Errorf("current streak = %d, want 3", got)
	}
}

func TestComputeStreak_TwoDaysAgoIsBroken(t *testing.T) {
	now := mustDate("2026-02-26")
	if got := ComputeStreak([]string{"2026-02-24"}, now); got != 0 {
		t.Errorf("current streak = %d, want 0 (streak broken)", got)
	}
}

func TestComputeStreak_GraceDayWithRunBehind(t *testing.T) {
	now := mustDate("2026-02-26")
	dates := []string{"2026-02-25", "2026-02-24"}
	if got := ComputeStreak(dates, now); got != 2 {
		t.Errorf("current streak = %d, want 2", got)
	}
}

func TestComputeStreak_StopsAtGap(t *testing.T) {
	now := mustDate("2026-02-26")
	dates := []string{"2026-02-26", "2026-02-25", "2026-02-20", "2026-02-19", "2026-02-18"}
	if got := ComputeStreak(dates, now); got != 2 {
		t.Errorf("current streak = %d, want 2", got)
	}
}

func TestComputeStreak_DuplicatesDoNotCount(t *testing.T) {
	now := mustDate("2026-02-26")
	dates := []string{"2026-02-26", "2026-02-26", "2026-02-25"}
	if got := ComputeStreak(dates, now); got != 2 {
		t.Errorf("current streak = %d, want 2", got)
	}
}

func TestComputeStreak_IgnoresGarbage(t *testing.T) {
	now := mustDate("2026-02-26")
	dates := []string{"not-a-date", "2026-02-26", "", "2026-13-40"}
	if got := ComputeStreak(dates, now); got != 1 {
		t.Errorf("current streak = %d, want 1", got)
	}
	if got := ComputeStreak([]string{"garbage"}, now); got != 0 {
		t.Errorf("all-garbage streak = %d, want 0", got)
	}
}

func TestComputeStreak_AcrossMonthAndYear(t *testing.T) {
	now := mustDate("2026-01-01")
	dates := []string{"2026-01-01", "2025-12-31", "2025-12-30"}
	if got := ComputeStreak(dates, now); got != 3 {
		t.Errorf("current streak = %d, want 3", got)
	}
}

func TestComputeStreak_UsesTodayLocation(t *testing.T) {
	// 23:30 on March 8th in Sao Paulo is already March 9th in UTC; the 7th
	// must still count as yesterday.
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	lateEvening := time.Date(2026, 3, 8, 23, 30, 0, 0, loc)
	if got := ComputeStreak([]string{"2026-03-07"}, lateEvening); got != 1 {
		t.Errorf("streak = %d, want 1 (yesterday in local time)", got)
	}
}

func TestLongestStreak(t *testing.T) {
	dates := []string{
		"2026-02-26",
		"2026-02-25",
		"2026-02-14",
		"2026-02-13",
		"2026-02-12",
		"2026-02-11",
		"2026-02-10",
	}
	if got := LongestStreak(dates); got != 5 {
		t.Errorf("longest = %d, want 5", got)
	}
	if got := LongestStreak(nil); got != 0 {
		t.Errorf("longest(nil) = %d, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	now := mustDate("2026-02-26")
	info := Summarize([]string{"2026-02-24", "2026-02-23"}, now)
	if info.Current != 0 {
		t.Errorf("current = %d, want 0", info.Current)
	}
	if info.Longest != 2 {
		t.Errorf("longest = %d, want 2", info.Longest)
	}
}
