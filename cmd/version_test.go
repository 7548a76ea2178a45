package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rnwolfe/agenda/internal/version"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		short   bool
		wantOut string
	}{
		{
			name:    "default version output",
			wantOut: fmt.Sprintf("agenda %s", version.Full()),
		},
		{
			name:    "short flag version output",
			short:   true,
			wantOut: version.Short(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			versionShort, versionJSON = tt.short, false
			defer func() { versionShort = false }()

			output := strings.TrimSpace(captureStdout(t, func() {
				if err := runVersion(nil, nil); err != nil {
					t.Errorf("runVersion: %v", err)
				}
			}))

			if output != tt.wantOut {
				t.Errorf("output mismatch\nWant: %s\nGot: %s", tt.wantOut, output)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	versionJSON = true
	defer func() { versionJSON = false }()

	out := captureStdout(t, func() {
		if err := runVersion(nil, nil); err != nil {
			t.Errorf("runVersion: %v", err)
		}
	})

	var info version.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if info.Version != version.Version {
		t.Errorf("Version = %q, want %q", info.Version, version.Version)
	}
}
