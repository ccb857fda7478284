package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[stash]
url = "http://stash.local:9999"
api_key = "secret"

[scrape]
environment = "sandboxed"
timeout = "45s"
cache_ttl = "1h"

[import]
hotlink_hosts = ["guarded.example"]
output_dir = "/data/media"
scan_wait = "90s"
locate_retries = 5

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://stash.local:9999", cfg.Stash.URL)
	assert.Equal(t, "secret", cfg.Stash.APIKey)
	assert.Equal(t, "sandboxed", cfg.Scrape.Environment)
	assert.Equal(t, 45*time.Second, cfg.Scrape.Timeout.Duration())
	assert.Equal(t, time.Hour, cfg.Scrape.CacheTTL.Duration())
	assert.Equal(t, []string{"guarded.example"}, cfg.Import.HotlinkHosts)
	assert.Equal(t, "/data/media", cfg.Import.OutputDir)
	assert.Equal(t, 90*time.Second, cfg.Import.ScanWait.Duration())
	assert.Equal(t, 5, cfg.Import.LocateRetries)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[stash]
url = "http://localhost:9999"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "unrestricted", cfg.Scrape.Environment)
	assert.Equal(t, 90*time.Second, cfg.Scrape.Timeout.Duration())
	assert.Equal(t, "stash-downloader", cfg.Scrape.PluginID)
	assert.Equal(t, 2*time.Minute, cfg.Import.ScanWait.Duration())
	assert.Equal(t, 10, cfg.Import.LocateRetries)
	assert.Equal(t, "./data/stashgrab.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("TEST_STASH_KEY", "from-env")
	path := writeConfig(t, `
[stash]
url = "http://localhost:9999"
api_key = "${TEST_STASH_KEY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Stash.APIKey)
}

func TestLoad_UnsetEnvVarLeftAsIs(t *testing.T) {
	path := writeConfig(t, `
[stash]
url = "http://localhost:9999"
api_key = "${DEFINITELY_NOT_SET_12345}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${DEFINITELY_NOT_SET_12345}", cfg.Stash.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `[stash` + "\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Stash.URL)
	assert.Equal(t, "unrestricted", cfg.Scrape.Environment)
}

func TestWrite_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Stash.URL = "http://stash.local:9999"
	require.NoError(t, cfg.Write(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://stash.local:9999", reloaded.Stash.URL)
}
