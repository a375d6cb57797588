package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfig(t, `
name = "edge"
property_files = ["application.yaml", "overrides.yaml"]
profiles = ["production"]
stop_timeout = "45s"
heartbeat_interval = "2s"
log_level = "debug"
watch_properties = false
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.Name != "edge" {
		t.Errorf("Name = %v, want edge", fc.Name)
	}
	if len(fc.PropertyFiles) != 2 {
		t.Errorf("PropertyFiles = %v, want 2 entries", fc.PropertyFiles)
	}
	if fc.StopTimeout != "45s" {
		t.Errorf("StopTimeout = %v, want 45s", fc.StopTimeout)
	}
	if fc.WatchProperties == nil || *fc.WatchProperties {
		t.Errorf("WatchProperties = %v, want false", fc.WatchProperties)
	}
}

func TestLoadFileConfig_Missing(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("LoadFileConfig() on missing file: want error")
	}
}

func TestLoadFileConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "name = [unclosed")
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig() on malformed TOML: want error")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := DefaultConfig()
	off := false
	fc := FileConfig{
		Name:              "edge",
		Profiles:          []string{"production"},
		StopTimeout:       "45s",
		HeartbeatInterval: "2s",
		LogLevel:          "debug",
		WatchProperties:   &off,
	}

	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig() error = %v", err)
	}

	if cfg.Name != "edge" {
		t.Errorf("Name = %v, want edge", cfg.Name)
	}
	if cfg.StopTimeout != 45*time.Second {
		t.Errorf("StopTimeout = %v, want 45s", cfg.StopTimeout)
	}
	if cfg.HeartbeatInterval != 2*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 2s", cfg.HeartbeatInterval)
	}
	if cfg.WatchProperties {
		t.Error("WatchProperties = true, want false from file")
	}
	if len(cfg.Profiles) != 1 || cfg.Profiles[0] != "production" {
		t.Errorf("Profiles = %v, want [production]", cfg.Profiles)
	}
}

func TestApplyFileConfig_FlagPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "from-flag"
	fc := FileConfig{Name: "from-file", StopTimeout: "1s"}

	changed := map[string]bool{"name": true}
	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatalf("ApplyFileConfig() error = %v", err)
	}

	if cfg.Name != "from-flag" {
		t.Errorf("Name = %v, explicit flag must win over file", cfg.Name)
	}
	if cfg.StopTimeout != time.Second {
		t.Errorf("StopTimeout = %v, want file value 1s", cfg.StopTimeout)
	}
}

func TestApplyFileConfig_BadDuration(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{StopTimeout: "soon"}
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err == nil {
		t.Error("ApplyFileConfig() with bad duration: want error")
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("VESSEL_CLI_NAME", "env-name")
	t.Setenv("VESSEL_CLI_PROFILES", "staging,metrics")
	t.Setenv("VESSEL_CLI_STOP_TIMEOUT", "5s")
	t.Setenv("VESSEL_CLI_WATCH", "false")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}

	if cfg.Name != "env-name" {
		t.Errorf("Name = %v, want env-name", cfg.Name)
	}
	if len(cfg.Profiles) != 2 {
		t.Errorf("Profiles = %v, want 2 entries", cfg.Profiles)
	}
	if cfg.StopTimeout != 5*time.Second {
		t.Errorf("StopTimeout = %v, want 5s", cfg.StopTimeout)
	}
	if cfg.WatchProperties {
		t.Error("WatchProperties = true, want false from env")
	}
}

func TestApplyEnvConfig_FlagPrecedence(t *testing.T) {
	t.Setenv("VESSEL_CLI_NAME", "env-name")

	cfg := DefaultConfig()
	cfg.Name = "from-flag"
	if err := ApplyEnvConfig(&cfg, map[string]bool{"name": true}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}

	if cfg.Name != "from-flag" {
		t.Errorf("Name = %v, explicit flag must win over env", cfg.Name)
	}
}

func TestFileExists(t *testing.T) {
	path := writeConfig(t, "name = \"x\"\n")
	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Join(t.TempDir(), "ghost.toml")) {
		t.Error("FileExists() = true for missing file")
	}
}
