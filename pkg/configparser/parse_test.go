package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string        `env:"CFGTEST_NAME" default:"accounts"`
	Port    int           `env:"CFGTEST_PORT" default:"3000"`
	Debug   bool          `env:"CFGTEST_DEBUG" default:"false"`
	Timeout time.Duration `env:"CFGTEST_TIMEOUT" default:"15m"`

	Nested struct {
		Host string `env:"CFGTEST_NESTED_HOST" default:"localhost"`
	}
}

func TestParseEnvironmentDefaults(t *testing.T) {
	cfg := &testConfig{}
	require.NoError(t, ParseEnvironment(cfg))

	assert.Equal(t, "accounts", cfg.Name)
	assert.Equal(t, 3000, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 15*time.Minute, cfg.Timeout)
	assert.Equal(t, "localhost", cfg.Nested.Host)
}

func TestParseEnvironmentOverrides(t *testing.T) {
	t.Setenv("CFGTEST_NAME", "other")
	t.Setenv("CFGTEST_PORT", "8080")
	t.Setenv("CFGTEST_DEBUG", "true")
	t.Setenv("CFGTEST_TIMEOUT", "30s")
	t.Setenv("CFGTEST_NESTED_HOST", "db.internal")

	cfg := &testConfig{}
	require.NoError(t, ParseEnvironment(cfg))

	assert.Equal(t, "other", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "db.internal", cfg.Nested.Host)
}

func TestParseEnvironmentRejectsNonPointer(t *testing.T) {
	assert.Error(t, ParseEnvironment(testConfig{}))
	assert.Error(t, ParseEnvironment(nil))
}

func TestLoadYamlFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
# comment
log_level: DEBUG

database:
  host: db.example.com
  port: 5433

auth:
  jwt_secret: ${CFGTEST_SECRET:-fallback-secret}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	for _, key := range []string{"LOG_LEVEL", "DATABASE_HOST", "DATABASE_PORT", "AUTH_JWT_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	require.NoError(t, LoadYamlFile(path))

	assert.Equal(t, "DEBUG", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "db.example.com", os.Getenv("DATABASE_HOST"))
	assert.Equal(t, "5433", os.Getenv("DATABASE_PORT"))
	assert.Equal(t, "fallback-secret", os.Getenv("AUTH_JWT_SECRET"))
}

func TestLoadYamlFileMissing(t *testing.T) {
	err := LoadYamlFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
