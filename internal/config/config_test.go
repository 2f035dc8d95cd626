package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/sso-profiles/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		input := []byte(`storage:
  backend: sqlite
  path: /var/lib/sso/profiles.db
auto_populate_used_profiles: false
open_profile_in_dedicated_container: true
default_container: work
destination: https://eu-west-1.console.aws.amazon.com/
log_format: json
`)
		cfg, err := config.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
		assert.Equal(t, "/var/lib/sso/profiles.db", cfg.Storage.Path)
		assert.False(t, cfg.AutoPopulateUsedProfiles)
		assert.True(t, cfg.OpenProfileInDedicatedContainer)
		assert.Equal(t, "work", cfg.DefaultContainer)
		assert.Equal(t, "https://eu-west-1.console.aws.amazon.com/", cfg.Destination)
		assert.Equal(t, config.LogFormatJSON, cfg.LogFormat)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte("open_profile_in_dedicated_container: true\n"))
		require.NoError(t, err)
		assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
		assert.True(t, cfg.AutoPopulateUsedProfiles)
		assert.Equal(t, "https://console.aws.amazon.com/", cfg.Destination)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg, err := config.Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := config.Parse([]byte(`{{{`))
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.Parse([]byte("storage:\n  backend: redis\n"))
		assert.ErrorContains(t, err, "redis")
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.OpenProfileInDedicatedContainer = true
	cfg.Storage.Path = "/tmp/p.json"

	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "open_profile_in_dedicated_container: true")

	parsed, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg.AutoPopulateUsedProfiles = false
	require.NoError(t, config.Save(path, cfg))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.AutoPopulateUsedProfiles)

	require.NoError(t, os.WriteFile(path, []byte("log_format: xml\n"), 0644))
	_, err = config.Load(path)
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Set("auto_populate_used_profiles", "false"))
	assert.False(t, cfg.AutoPopulateUsedProfiles)

	require.NoError(t, cfg.Set("storage.backend", "sqlite"))
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)

	require.NoError(t, cfg.Set("destination", "https://s3.console.aws.amazon.com/"))
	assert.Equal(t, "https://s3.console.aws.amazon.com/", cfg.Destination)

	assert.ErrorContains(t, cfg.Set("nope", "x"), "unknown config key")
	assert.Error(t, cfg.Set("open_profile_in_dedicated_container", "maybe"))

	assert.Error(t, cfg.Set("storage.backend", "redis"))
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend, "failed set leaves config unchanged")
}

func TestKeys(t *testing.T) {
	keys := config.Keys()
	assert.Contains(t, keys, "storage.backend")
	assert.Contains(t, keys, "auto_populate_used_profiles")
	assert.IsIncreasing(t, keys)
}
