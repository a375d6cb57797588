package runtime

import (
	"fmt"
	"time"
)

// DefaultEnvPrefix is the environment variable prefix merged into the
// property store.
const DefaultEnvPrefix = "VESSEL_"

// Config holds the configuration for a container runtime.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Name identifies the container in logs and events.
	Name string

	// PropertyFiles are YAML property sources merged into the
	// environment in order; later files override earlier ones.
	PropertyFiles []string

	// EnvPrefix selects the process environment variables merged over
	// the property files. Empty disables the overlay.
	EnvPrefix string

	// Profiles are activated in addition to any profiles declared by the
	// property sources.
	Profiles []string

	// RuntimeVersion is the platform version exposed to version-in-range
	// conditions. Derived from build info when empty.
	RuntimeVersion string

	// ResourceBase is the directory resource-exists rules resolve
	// relative paths against. Empty means the working directory.
	ResourceBase string

	// StopTimeout bounds how long shutdown waits for each participant's
	// completion signal. Zero waits indefinitely.
	StopTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Name:      "vessel",
		EnvPrefix: DefaultEnvPrefix,
	}
}

// SetDefaults fills unset fields with defaults.
func (c *Config) SetDefaults() {
	if c.Name == "" {
		c.Name = "vessel"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("runtime: name is required")
	}
	if c.StopTimeout < 0 {
		return fmt.Errorf("runtime: stop timeout must not be negative")
	}
	return nil
}
