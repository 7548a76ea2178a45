package tips

import (
	"strings"
	"testing"
	"time"
)

func TestAll_Wellformed(t *testing.T) {
	if len(All()) < 10 {
		t.Fatalf("All() returned %d tips, want at least 10", len(All()))
	}
	for i, tip := range All() {
		if !strings.HasPrefix(tip, "`agenda ") {
			t.Errorf("All()[%d] = %q does not start with a command", i, tip)
		}
	}
}

func TestDaily_SameDay(t *testing.T) {
	morning := time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC)
	night := time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)
	if Daily(morning) != Daily(night) {
		t.Error("Daily() changed within one day")
	}
}

func TestDaily_Rotates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for i := 0; i < len(all); i++ {
		seen[Daily(start.AddDate(0, 0, i))] = true
	}
	if len(seen) != len(all) {
		t.Errorf("saw %d distinct tips over %d days, want %d", len(seen), len(all), len(all))
	}
}
