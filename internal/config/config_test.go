package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webterm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.True(t, cfg.SanitizeErrors)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "An internal error occurred. Please try again later.", cfg.GenericErrorMessage)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
listen_addr: ":9090"
store: sqlite
sqlite_path: /var/lib/webterm/history.db
default_location: Porto
sanitize_errors: false
provider_timeout: 2s
cache_ttl: 0s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/var/lib/webterm/history.db", cfg.SQLitePath)
	assert.Equal(t, "Porto", cfg.DefaultLocation)
	assert.False(t, cfg.SanitizeErrors)
	assert.Equal(t, 2*time.Second, cfg.ProviderTimeout)
	assert.Zero(t, cfg.CacheTTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "default_location: Porto\ndocs_enabled: false\n")
	t.Setenv("WEBTERM_DEFAULT_LOCATION", "Faro")
	t.Setenv("WEBTERM_DOCS_ENABLED", "true")
	t.Setenv("WEBTERM_PROVIDER_TIMEOUT", "750ms")
	t.Setenv("WEBTERM_GENERIC_ERROR_MESSAGE", "Something broke.")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Faro", cfg.DefaultLocation)
	assert.Equal(t, "Something broke.", cfg.GenericErrorMessage)
	assert.True(t, cfg.DocsEnabled)
	assert.Equal(t, 750*time.Millisecond, cfg.ProviderTimeout)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := Load(writeFile(t, "store: [unclosed"))
		assert.Error(t, err)
	})
	t.Run("Unknown key", func(t *testing.T) {
		_, err := Load(writeFile(t, "listen_adress: \":1\"\n"))
		assert.ErrorContains(t, err, "listen_adress")
	})
	t.Run("Unknown store", func(t *testing.T) {
		t.Setenv("WEBTERM_STORE", "postgres")
		_, err := Load("")
		assert.ErrorContains(t, err, "unknown store")
	})
	t.Run("Bad duration", func(t *testing.T) {
		t.Setenv("WEBTERM_PROVIDER_TIMEOUT", "soon")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("Zero timeout", func(t *testing.T) {
		t.Setenv("WEBTERM_PROVIDER_TIMEOUT", "0s")
		_, err := Load("")
		assert.ErrorContains(t, err, "provider_timeout")
	})
}
