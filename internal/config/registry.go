package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type (string, int).
	Type KeyType
	// Desc is a human-readable description shown in `agenda config list`.
	Desc string
	// DefaultStr is the string representation of the default/zero value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": stringKey("Display name", "",
		func(c *Config) *string { return &c.User.Name }),
	"user.email": stringKey("Email address (journal owner)", "",
		func(c *Config) *string { return &c.User.Email }),
	"calendar.timezone": {
		Type:       KeyTypeString,
		Desc:       "IANA timezone for schedule slots (empty = system local)",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.Calendar.Timezone },
		set: func(cfg *Config, v string) error {
			if v != "" {
				if _, err := time.LoadLocation(v); err != nil {
					return fmt.Errorf("unknown timezone %q", v)
				}
			}
			cfg.Calendar.Timezone = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Calendar.Timezone = "" },
	},
	"store.driver": {
		Type:       KeyTypeString,
		Desc:       "Storage driver (sqlite, postgres)",
		DefaultStr: "sqlite",
		get:        func(cfg *Config) string { return cfg.Store.Driver },
		set: func(cfg *Config, v string) error {
			switch v {
			case "sqlite", "postgres":
				cfg.Store.Driver = v
				return nil
			}
			return fmt.Errorf("invalid driver %q (use sqlite or postgres)", v)
		},
		unset: func(cfg *Config) { cfg.Store.Driver = "sqlite" },
	},
	"store.dsn": stringKey("Database DSN (postgres) or file path (sqlite)", "",
		func(c *Config) *string { return &c.Store.DSN }),
	"server.listen": stringKey("HTTP listen address for `agenda serve`", "127.0.0.1:8089",
		func(c *Config) *string { return &c.Server.Listen }),
	"server.reminder_cron": {
		Type:       KeyTypeString,
		Desc:       "Cron schedule for the evening reminder",
		DefaultStr: "0 21 * * *",
		get:        func(cfg *Config) string { return cfg.Server.ReminderCron },
		set: func(cfg *Config, v string) error {
			if _, err := cron.ParseStandard(v); err != nil {
				return fmt.Errorf("invalid cron schedule %q: %w", v, err)
			}
			cfg.Server.ReminderCron = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Server.ReminderCron = "0 21 * * *" },
	},
	"export.chrome_path": stringKey("Chrome/Chromium binary used for PDF export", "",
		func(c *Config) *string { return &c.Export.ChromePath }),
	"export.timeout_seconds": {
		Type:       KeyTypeInt,
		Desc:       "PDF export timeout in seconds",
		DefaultStr: "30",
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Export.TimeoutSeconds) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value %q for export.timeout_seconds: must be a positive integer", v)
			}
			cfg.Export.TimeoutSeconds = n
			return nil
		},
		unset: func(cfg *Config) { cfg.Export.TimeoutSeconds = 30 },
	},
	"log.level": {
		Type:       KeyTypeString,
		Desc:       "Log level (debug, info, warn, error)",
		DefaultStr: "info",
		get:        func(cfg *Config) string { return cfg.Log.Level },
		set: func(cfg *Config, v string) error {
			switch v {
			case "debug", "info", "warn", "error":
				cfg.Log.Level = v
				return nil
			}
			return fmt.Errorf("invalid log level %q", v)
		},
		unset: func(cfg *Config) { cfg.Log.Level = "info" },
	},
}

func stringKey(desc, def string, field func(*Config) *string) *KeyEntry {
	return &KeyEntry{
		Type:       KeyTypeString,
		Desc:       desc,
		DefaultStr: def,
		get:        func(cfg *Config) string { return *field(cfg) },
		set:        func(cfg *Config, v string) error { *field(cfg) = v; return nil },
		unset:      func(cfg *Config) { *field(cfg) = def },
	}
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}
