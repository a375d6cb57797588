package cliconfig

import "os"

// ApplyEnvConfig applies VESSEL_CLI_* environment variables to the config.
// Environment overrides file config but is overridden by explicit flags.
// The CLI prefix is distinct from Config.EnvPrefix, which feeds the
// container's property environment.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("name", os.Getenv("VESSEL_CLI_NAME"), &cfg.Name)
	s.setString("env-prefix", os.Getenv("VESSEL_CLI_ENV_PREFIX"), &cfg.EnvPrefix)
	s.setString("resource-base", os.Getenv("VESSEL_CLI_RESOURCE_BASE"), &cfg.ResourceBase)
	s.setString("log-level", os.Getenv("VESSEL_CLI_LOG_LEVEL"), &cfg.LogLevel)

	s.setStringsFromString("properties", os.Getenv("VESSEL_CLI_PROPERTY_FILES"), &cfg.PropertyFiles)
	s.setStringsFromString("profiles", os.Getenv("VESSEL_CLI_PROFILES"), &cfg.Profiles)

	if err := s.setDuration("stop-timeout", os.Getenv("VESSEL_CLI_STOP_TIMEOUT"), &cfg.StopTimeout); err != nil {
		return err
	}
	if err := s.setDuration("heartbeat-interval", os.Getenv("VESSEL_CLI_HEARTBEAT_INTERVAL"), &cfg.HeartbeatInterval); err != nil {
		return err
	}

	s.setBoolFromString("log-console", os.Getenv("VESSEL_CLI_LOG_CONSOLE"), &cfg.LogConsole)
	s.setBoolFromString("watch", os.Getenv("VESSEL_CLI_WATCH"), &cfg.WatchProperties)
	s.setBoolFromString("once", os.Getenv("VESSEL_CLI_ONCE"), &cfg.Once)

	return nil
}
