package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Name              string   `toml:"name"`
	PropertyFiles     []string `toml:"property_files"`
	Profiles          []string `toml:"profiles"`
	EnvPrefix         string   `toml:"env_prefix"`
	ResourceBase      string   `toml:"resource_base"`
	StopTimeout       string   `toml:"stop_timeout"`
	HeartbeatInterval string   `toml:"heartbeat_interval"`
	LogLevel          string   `toml:"log_level"`
	LogConsole        *bool    `toml:"log_console"`
	WatchProperties   *bool    `toml:"watch_properties"`
	Once              *bool    `toml:"once"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.vessel/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".vessel", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("name", fc.Name, &cfg.Name)
	s.setString("env-prefix", fc.EnvPrefix, &cfg.EnvPrefix)
	s.setString("resource-base", fc.ResourceBase, &cfg.ResourceBase)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setStrings("properties", fc.PropertyFiles, &cfg.PropertyFiles)
	s.setStrings("profiles", fc.Profiles, &cfg.Profiles)

	if err := s.setDuration("stop-timeout", fc.StopTimeout, &cfg.StopTimeout); err != nil {
		return err
	}
	if err := s.setDuration("heartbeat-interval", fc.HeartbeatInterval, &cfg.HeartbeatInterval); err != nil {
		return err
	}

	s.setBool("log-console", fc.LogConsole, &cfg.LogConsole)
	s.setBool("watch", fc.WatchProperties, &cfg.WatchProperties)
	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
