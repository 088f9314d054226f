package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgate/internal/config"
)

// clearOASGATEEnv clears all OASGATE_* env vars to isolate tests from the ambient environment.
func clearOASGATEEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASGATE_STANDARD", "OASGATE_CHECK_URLS",
		"OASGATE_CONCURRENCY", "OASGATE_PROBE_CONCURRENCY",
		"OASGATE_URL_TIMEOUT", "OASGATE_MAX_FILE_SIZE",
		"OASGATE_USER_AGENT", "OASGATE_MCP_LIMIT", "OASGATE_MCP_MAX_LIMIT",
		"OASGATE_MAX_INLINE_SIZE", "OASGATE_ALLOW_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASGATEEnv(t)
	t.Chdir(t.TempDir())

	c := loadConfig()

	assert.Equal(t, config.Default(), c.Config)
	assert.Equal(t, 100, c.Limit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASGATEEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("OASGATE_STANDARD", "ihan")
	t.Setenv("OASGATE_URL_TIMEOUT", "5s")
	t.Setenv("OASGATE_MCP_LIMIT", "20")
	t.Setenv("OASGATE_MCP_MAX_LIMIT", "50")
	t.Setenv("OASGATE_MAX_INLINE_SIZE", "2048")
	t.Setenv("OASGATE_ALLOW_PRIVATE_IPS", "true")

	c := loadConfig()

	assert.Equal(t, config.StandardIHAN, c.Standard)
	assert.Equal(t, 5*time.Second, c.URLTimeout)
	assert.Equal(t, 20, c.Limit)
	assert.Equal(t, 50, c.MaxLimit)
	assert.Equal(t, int64(2048), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
}

func TestLoadConfig_InvalidEnvFallsBack(t *testing.T) {
	clearOASGATEEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("OASGATE_MCP_LIMIT", "-3")
	t.Setenv("OASGATE_ALLOW_PRIVATE_IPS", "maybe")

	c := loadConfig()

	assert.Equal(t, 100, c.Limit)
	assert.False(t, c.AllowPrivateIPs)
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	clearOASGATEEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile),
		[]byte("standard: ihan\nprobe_concurrency: 9\n"), 0o600))

	c := loadConfig()

	assert.Equal(t, config.StandardIHAN, c.Standard)
	assert.Equal(t, 9, c.ProbeConcurrency)
}

func TestLoadConfig_InvalidFileUsesDefaults(t *testing.T) {
	clearOASGATEEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile),
		[]byte("standard: openapi-2\n"), 0o600))

	c := loadConfig()

	assert.Equal(t, config.Default(), c.Config)
}
