package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	result := Full()
	if result == "" {
		t.Fatal("Full() returned empty string")
	}
	if !strings.Contains(result, Version) {
		t.Errorf("Full() %q does not contain version %q", result, Version)
	}
}

func TestShort(t *testing.T) {
	if got := Short(); got != Version {
		t.Errorf("Short() = %q, want %q", got, Version)
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.Commit != Commit {
		t.Errorf("Get() = %+v", info)
	}
	if !strings.HasPrefix(info.Go, "go") {
		t.Errorf("Go = %q", info.Go)
	}
}

func resetVars(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
	Version, Commit, Date = "dev", "none", "unknown"
}

func TestFromBuildInfo(t *testing.T) {
	resetVars(t)
	fromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-10-19T12:00:00Z"},
		},
	})
	if Version != "v1.4.0" || Commit != "0123456" || Date != "2026-10-19T12:00:00Z" {
		t.Errorf("got %s %s %s", Version, Commit, Date)
	}
}

func TestFromBuildInfo_DevelKeepsDefault(t *testing.T) {
	resetVars(t)
	fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("Version = %q, want dev", Version)
	}
}

func TestFromBuildInfo_LdflagsWin(t *testing.T) {
	resetVars(t)
	Version, Commit = "v2.0.0", "feedbee"
	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}},
	})
	if Version != "v2.0.0" || Commit != "feedbee" {
		t.Errorf("got %s %s", Version, Commit)
	}
}

func TestFromBuildInfo_Nil(t *testing.T) {
	resetVars(t)
	fromBuildInfo(nil)
	if Version != "dev" {
		t.Errorf("Version = %q", Version)
	}
}
