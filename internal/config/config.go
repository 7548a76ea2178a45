package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the top-level agenda configuration.
type Config struct {
	User     UserConfig     `toml:"user"`
	Calendar CalendarConfig `toml:"calendar"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
	Export   ExportConfig   `toml:"export"`
	Log      LogConfig      `toml:"log"`
}

// UserConfig identifies the journal owner. Entries are keyed by Email.
type UserConfig struct {
	Name  string `toml:"name" envconfig:"USER_NAME"`
	Email string `toml:"email" envconfig:"USER_EMAIL"`
}

type CalendarConfig struct {
	// Timezone is the IANA zone slot times are written in. Empty means the
	// system local zone.
	Timezone string `toml:"timezone" envconfig:"TIMEZONE"`
}

type StoreConfig struct {
	Driver string `toml:"driver" envconfig:"STORE_DRIVER"` // sqlite or postgres
	DSN    string `toml:"dsn" envconfig:"STORE_DSN"`
}

type ServerConfig struct {
	Listen       string `toml:"listen" envconfig:"LISTEN"`
	ReminderCron string `toml:"reminder_cron" envconfig:"REMINDER_CRON"`
}

type ExportConfig struct {
	ChromePath     string `toml:"chrome_path" envconfig:"CHROME_PATH"`
	TimeoutSeconds int    `toml:"timeout_seconds" envconfig:"EXPORT_TIMEOUT_SECONDS"`
}

type LogConfig struct {
	Level string `toml:"level" envconfig:"LOG_LEVEL"`
}

// Location resolves the configured timezone, falling back to time.Local.
func (c CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Owner returns the identity journal records are stored under.
func (c *Config) Owner() string {
	if c.User.Email != "" {
		return c.User.Email
	}
	return "local"
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
	BackupFile string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	agendaConfig := filepath.Join(configDir, "agenda")
	agendaData := filepath.Join(dataDir, "agenda")

	return Paths{
		ConfigDir:  agendaConfig,
		DataDir:    agendaData,
		CacheDir:   filepath.Join(cacheDir, "agenda"),
		StateDir:   filepath.Join(stateDir, "agenda"),
		ConfigFile: filepath.Join(agendaConfig, "config.toml"),
		DBFile:     filepath.Join(agendaData, "agenda.db"),
		BackupFile: filepath.Join(agendaData, "agenda-backup.age"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found. AGENDA_*
// environment variables override file values.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", paths.ConfigFile, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays AGENDA_* variables. Unset variables leave values untouched.
func applyEnv(cfg *Config) error {
	sections := []any{&cfg.User, &cfg.Calendar, &cfg.Store, &cfg.Server, &cfg.Export, &cfg.Log}
	for _, s := range sections {
		if err := envconfig.Process("agenda", s); err != nil {
			return fmt.Errorf("reading environment: %w", err)
		}
	}
	return nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if agenda has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

func defaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "sqlite",
		},
		Server: ServerConfig{
			Listen:       "127.0.0.1:8089",
			ReminderCron: "0 21 * * *",
		},
		Export: ExportConfig{
			TimeoutSeconds: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
