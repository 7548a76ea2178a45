package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/rnwolfe/agenda/internal/config"
)

// configTestEnv points every XDG directory at a temp dir.
func configTestEnv(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")
}

// initTestConfig writes a config for a test user in UTC.
func initTestConfig(t *testing.T) {
	t.Helper()
	configTestEnv(t)
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.User.Name = "Ana"
	cfg.User.Email = "ana@example.com"
	cfg.Calendar.Timezone = "UTC"
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = old
		r.Close()
	}()

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	fn()

	w.Close()
	return string(<-done)
}
