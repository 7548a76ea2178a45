package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// captureStdout runs f with os.Stdout redirected to a pipe and returns the output.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	f()

	_ = w.Close()
	b, _ := io.ReadAll(r)
	_ = r.Close()
	return string(b)
}

func TestNew_IncludesServiceAndStack(t *testing.T) {
	out := captureStdout(t, func() {
		l := New("agenda-test", "info")
		l.Error().Stack().Err(errors.New("boom")).Msg("failed")
	})

	line := strings.TrimSpace(out)
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", line, err)
	}
	if m["service"] != "agenda-test" {
		t.Errorf("service = %v", m["service"])
	}
	if m["error"] != "boom" {
		t.Errorf("error = %v", m["error"])
	}
	if _, ok := m["stack"]; !ok {
		t.Error("expected stack field on error event")
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	out := captureStdout(t, func() {
		l := New("agenda-test", "warn")
		l.Info().Msg("hidden")
	})
	if strings.TrimSpace(out) != "" {
		t.Fatalf("info event should be filtered at warn level, got %q", out)
	}
}

func TestConsole_WritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	l := Console(&buf, "debug")
	l.Warn().Str("slot", "7:30").Msg("skipping slot")

	if !strings.Contains(buf.String(), "skipping slot") {
		t.Fatalf("console output missing message: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"debug": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"nope":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
