package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeYAML(t, "application.yaml", `
server:
  port: 8080
  ssl:
    enabled: true
cache:
  kind: redis
`)

	e := New()
	require.NoError(t, e.LoadFile(path))

	v, ok := e.Property("server.port")
	assert.True(t, ok)
	assert.Equal(t, "8080", v)

	v, ok = e.Property("server.ssl.enabled")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	_, ok = e.Property("server.ssl.mode")
	assert.False(t, ok)
}

func TestLoadFile_LaterFilesOverride(t *testing.T) {
	base := writeYAML(t, "base.yaml", "cache:\n  kind: redis\n")
	override := writeYAML(t, "override.yaml", "cache:\n  kind: memcached\n")

	e := New()
	require.NoError(t, e.LoadFile(base))
	require.NoError(t, e.LoadFile(override))

	assert.Equal(t, "memcached", e.PropertyOr("cache.kind", ""))
}

func TestLoadFile_Missing(t *testing.T) {
	e := New()
	assert.Error(t, e.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestLoadFile_ActivatesProfilesProperty(t *testing.T) {
	path := writeYAML(t, "application.yaml", "profiles:\n  active: production, metrics\n")

	e := New()
	require.NoError(t, e.LoadFile(path))

	assert.True(t, e.IsProfileActive("production"))
	assert.True(t, e.IsProfileActive("metrics"))
	assert.False(t, e.IsProfileActive("staging"))
}

func TestLoadEnviron(t *testing.T) {
	t.Setenv("VESSELTEST_SERVER_PORT", "9090")
	t.Setenv("VESSELTEST_CACHE_KIND", "redis")
	t.Setenv("OTHER_SERVER_PORT", "1111")

	e := New()
	e.LoadEnviron("VESSELTEST_")

	assert.Equal(t, "9090", e.PropertyOr("server.port", ""))
	assert.Equal(t, "redis", e.PropertyOr("cache.kind", ""))
	_, ok := e.Property("other.server.port")
	assert.False(t, ok, "variables outside the prefix must not leak in")
}

func TestSet_OverridesLoadedSources(t *testing.T) {
	path := writeYAML(t, "application.yaml", "server:\n  port: 8080\n")

	e := New()
	require.NoError(t, e.LoadFile(path))
	require.NoError(t, e.Set("server.port", 9999))

	assert.Equal(t, "9999", e.PropertyOr("server.port", ""))
}

func TestActivateProfiles(t *testing.T) {
	e := New()
	e.ActivateProfiles("production", " metrics ", "")

	assert.True(t, e.IsProfileActive("production"))
	assert.True(t, e.IsProfileActive("metrics"))
	assert.Equal(t, []string{"metrics", "production"}, e.ActiveProfiles())
}

func TestFileResources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keystore.p12"), []byte("x"), 0o644))

	r := NewFileResources(dir)
	assert.True(t, r.Exists("keystore.p12"))
	assert.True(t, r.Exists(filepath.Join(dir, "keystore.p12")))
	assert.False(t, r.Exists("missing.p12"))
	assert.False(t, r.Exists(""))
}

func TestInfo(t *testing.T) {
	info, err := NewInfo("2.5.0")
	require.NoError(t, err)
	assert.Equal(t, "2.5.0", info.CurrentVersion().String())

	_, err = NewInfo("not-a-version")
	assert.Error(t, err)

	assert.NotNil(t, InfoFromBuildInfo().CurrentVersion())
}
