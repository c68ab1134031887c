package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "warn", "")
	fs.String("preset", "ramp", "")
	fs.String("profile", "", "")
	return fs
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	s, err := Load("", newFlags())
	if err != nil {
		t.Fatal(err)
	}
	if s.LogLevel != "warn" || s.Preset != "ramp" || s.Profile != "" {
		t.Errorf("got %+v", s)
	}
	lvl, err := s.Level()
	if err != nil || lvl != slog.LevelWarn {
		t.Errorf("level: %v, %v", lvl, err)
	}
}

func TestPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(cfg, []byte("preset: counter\nlog_level: info\nprofile: from-file.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SEQCHECK_LOG_LEVEL", "error")

	fs := newFlags()
	if err := fs.Parse([]string{"--profile", "from-flag.yaml"}); err != nil {
		t.Fatal(err)
	}

	s, err := Load(cfg, fs)
	if err != nil {
		t.Fatal(err)
	}
	if s.Preset != "counter" {
		t.Errorf("preset from file: got %q", s.Preset)
	}
	if s.LogLevel != "error" {
		t.Errorf("log level from env: got %q", s.LogLevel)
	}
	if s.Profile != "from-flag.yaml" {
		t.Errorf("profile from flag: got %q", s.Profile)
	}
}

func TestWorkingDirectoryConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".seqcheck.yaml"), []byte("preset: counter\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	s, err := Load("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Preset != "counter" {
		t.Errorf("preset: got %q", s.Preset)
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil); err == nil {
		t.Error("expected error for explicit missing config")
	}
}

func TestBadLevel(t *testing.T) {
	s := &Settings{LogLevel: "loud"}
	if _, err := s.Level(); err == nil {
		t.Error("expected error")
	}
}
