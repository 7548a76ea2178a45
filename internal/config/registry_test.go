package config

import (
	"sort"
	"testing"
)

func TestValidKeyNames_Sorted(t *testing.T) {
	names := ValidKeyNames()
	if len(names) == 0 {
		t.Fatal("expected non-empty key list")
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted key names, got %v", names)
	}
}

func TestValidKeyNames_ContainsKnownKeys(t *testing.T) {
	expected := []string{"user.name", "user.email", "calendar.timezone", "store.driver", "server.listen"}
	nameSet := make(map[string]bool)
	for _, n := range ValidKeyNames() {
		nameSet[n] = true
	}
	for _, want := range expected {
		if !nameSet[want] {
			t.Errorf("ValidKeyNames missing expected key %q", want)
		}
	}
}

func TestLookupKey_Unknown(t *testing.T) {
	if _, ok := LookupKey("not.a.real.key"); ok {
		t.Fatal("expected unknown key to return false")
	}
}

func TestKeyEntry_SetAndUnset(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("user.email")

	if err := entry.Set(cfg, "ana@example.com"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "ana@example.com" {
		t.Fatalf("Get = %q, want ana@example.com", got)
	}
	entry.Unset(cfg)
	if cfg.User.Email != "" {
		t.Fatalf("Unset left %q", cfg.User.Email)
	}
}

func TestKeyEntry_Validation(t *testing.T) {
	cfg := defaultConfig()
	cases := []struct {
		key   string
		value string
	}{
		{"store.driver", "mysql"},
		{"calendar.timezone", "Mars/Olympus_Mons"},
		{"export.timeout_seconds", "-4"},
		{"export.timeout_seconds", "soon"},
		{"log.level", "loud"},
		{"server.reminder_cron", "every evening"},
		{"server.reminder_cron", "0 25 * * *"},
	}
	for _, tc := range cases {
		entry, ok := LookupKey(tc.key)
		if !ok {
			t.Fatalf("missing key %s", tc.key)
		}
		if err := entry.Set(cfg, tc.value); err == nil {
			t.Errorf("Set(%s, %q) should fail", tc.key, tc.value)
		}
	}
}

func TestKeyEntry_TimezoneAccepted(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("calendar.timezone")
	if err := entry.Set(cfg, "America/Sao_Paulo"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	loc, err := cfg.Calendar.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if loc.String() != "America/Sao_Paulo" {
		t.Fatalf("Location = %s", loc)
	}
}
