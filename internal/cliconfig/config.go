package cliconfig

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultStopTimeout bounds coordinated shutdown from the CLI.
const DefaultStopTimeout = 30 * time.Second

// Config holds CLI configuration for vessel.
type Config struct {
	Name string

	PropertyFiles []string
	Profiles      []string
	EnvPrefix     string
	ResourceBase  string

	StopTimeout       time.Duration
	HeartbeatInterval time.Duration

	LogLevel   string
	LogConsole bool

	WatchProperties bool
	Once            bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Name:              "vessel",
		EnvPrefix:         "VESSEL_",
		StopTimeout:       DefaultStopTimeout,
		HeartbeatInterval: 10 * time.Second,
		LogLevel:          "info",
		LogConsole:        true,
		WatchProperties:   true,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.StopTimeout < 0 {
		return fmt.Errorf("stop timeout must not be negative")
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat interval must be positive")
	}

	if c.ResourceBase == "" {
		if wd, err := os.Getwd(); err == nil {
			c.ResourceBase = wd
		}
	}

	for _, path := range c.PropertyFiles {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("property file path must not be empty")
		}
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a string slice if non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// setStringsFromString splits a comma separated string into a slice.
// Used for environment variables that come as strings.
func (s *configSetter) setStringsFromString(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}
