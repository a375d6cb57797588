package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "vessel" {
		t.Errorf("Name = %v, want vessel", cfg.Name)
	}
	if cfg.EnvPrefix != "VESSEL_" {
		t.Errorf("EnvPrefix = %v, want VESSEL_", cfg.EnvPrefix)
	}
	if cfg.StopTimeout != DefaultStopTimeout {
		t.Errorf("StopTimeout = %v, want %v", cfg.StopTimeout, DefaultStopTimeout)
	}
	if cfg.HeartbeatInterval != 10*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 10s", cfg.HeartbeatInterval)
	}
	if !cfg.WatchProperties {
		t.Error("WatchProperties = false, want true")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid defaults",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "missing name",
			config: Config{
				HeartbeatInterval: time.Second,
			},
			wantErr: true,
		},
		{
			name: "negative stop timeout",
			config: Config{
				Name:              "vessel",
				StopTimeout:       -time.Second,
				HeartbeatInterval: time.Second,
			},
			wantErr: true,
		},
		{
			name: "zero heartbeat interval",
			config: Config{
				Name: "vessel",
			},
			wantErr: true,
		},
		{
			name: "blank property file path",
			config: Config{
				Name:              "vessel",
				HeartbeatInterval: time.Second,
				PropertyFiles:     []string{"  "},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_DerivesResourceBase(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.ResourceBase == "" {
		t.Error("ResourceBase not derived from working directory")
	}

	cfg2 := DefaultConfig()
	cfg2.ResourceBase = "/srv/vessel"
	if err := cfg2.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg2.ResourceBase != "/srv/vessel" {
		t.Errorf("ResourceBase = %v, want explicit override kept", cfg2.ResourceBase)
	}
}

func TestConfigSetter_RespectsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	s := newConfigSetter(map[string]bool{"name": true})

	s.setString("name", "other", &cfg.Name)
	if cfg.Name != "vessel" {
		t.Errorf("Name = %v, changed flag must win", cfg.Name)
	}

	s.setString("env-prefix", "APP_", &cfg.EnvPrefix)
	if cfg.EnvPrefix != "APP_" {
		t.Errorf("EnvPrefix = %v, want APP_", cfg.EnvPrefix)
	}
}

func TestConfigSetter_StringsFromString(t *testing.T) {
	var dst []string
	s := newConfigSetter(map[string]bool{})

	s.setStringsFromString("profiles", "production, metrics ,", &dst)
	if len(dst) != 2 || dst[0] != "production" || dst[1] != "metrics" {
		t.Errorf("setStringsFromString() = %v, want [production metrics]", dst)
	}

	s.setStringsFromString("profiles", "", &dst)
	if len(dst) != 2 {
		t.Errorf("empty value must not clear destination, got %v", dst)
	}
}
