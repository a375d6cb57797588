package env

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ProfilesProperty is the property key holding the comma-separated list of
// profiles to activate when a property source is loaded.
const ProfilesProperty = "profiles.active"

// Environment is a koanf-backed property store with an active-profile set.
// Keys are dot-delimited ("server.ssl.enabled"). Later loads override
// earlier ones, so file sources layered under Set calls behave like the
// usual file < env < programmatic precedence.
//
// Environment implements condition.Environment.
type Environment struct {
	mu       sync.RWMutex
	k        *koanf.Koanf
	profiles map[string]struct{}
}

// New creates an empty environment.
func New() *Environment {
	return &Environment{
		k:        koanf.New("."),
		profiles: make(map[string]struct{}),
	}
}

// LoadFile merges a YAML property file into the environment. If the file
// carries the profiles.active property, the listed profiles are activated.
func (e *Environment) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("env: load %q: %w", path, err)
	}
	e.activateFromProperty()
	return nil
}

// LoadEnviron merges process environment variables carrying the given
// prefix (e.g. "VESSEL_"). Names are lowercased with underscores mapped to
// dots, so VESSEL_SERVER_PORT becomes server.port.
func (e *Environment) LoadEnviron(prefix string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, prefix) {
			continue
		}
		name, value, ok := strings.Cut(kv[len(prefix):], "=")
		if !ok || name == "" {
			continue
		}
		key := strings.ReplaceAll(strings.ToLower(name), "_", ".")
		_ = e.k.Set(key, value)
	}
	e.activateFromProperty()
}

// Set stores a property programmatically, overriding any loaded source.
func (e *Environment) Set(key string, value interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.k.Set(key, value)
}

// Property returns the property value for key as a string, and whether
// the key is present.
func (e *Environment) Property(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.k.Exists(key) {
		return "", false
	}
	return stringify(e.k.Get(key)), true
}

// PropertyOr returns the property value for key, or def when absent.
func (e *Environment) PropertyOr(key, def string) string {
	if v, ok := e.Property(key); ok {
		return v
	}
	return def
}

// ActivateProfiles adds the named profiles to the active set.
func (e *Environment) ActivateProfiles(names ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			e.profiles[n] = struct{}{}
		}
	}
}

// IsProfileActive reports whether the named profile is active.
func (e *Environment) IsProfileActive(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.profiles[name]
	return ok
}

// ActiveProfiles returns the sorted active profile names.
func (e *Environment) ActiveProfiles() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]string, 0, len(e.profiles))
	for n := range e.profiles {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// activateFromProperty folds profiles.active into the profile set.
// Caller holds the write lock.
func (e *Environment) activateFromProperty() {
	if !e.k.Exists(ProfilesProperty) {
		return
	}
	for _, n := range strings.Split(stringify(e.k.Get(ProfilesProperty)), ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			e.profiles[n] = struct{}{}
		}
	}
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
