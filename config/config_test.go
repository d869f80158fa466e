package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) Config {
	return Config{
		Port:       "8080",
		DBPath:     filepath.Join(t.TempDir(), "data", "expenses.db"),
		StorageKey: "expenses-tracker-data",
		LogLevel:   "info",
		LogFormat:  "json",
		ReportDir:  "./reports",
		Timezone:   "UTC",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "in-memory database", mutate: func(c *Config) { c.DBPath = ":memory:" }},
		{name: "non-numeric port", mutate: func(c *Config) { c.Port = "abc" }, errorString: "invalid port 'abc': must be a number"},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, errorString: "invalid port 70000: must be between 1 and 65535"},
		{name: "empty database path", mutate: func(c *Config) { c.DBPath = "" }, errorString: "database path cannot be empty"},
		{name: "empty storage key", mutate: func(c *Config) { c.StorageKey = " " }, errorString: "storage key cannot be empty"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, errorString: "invalid log level 'loud'"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, errorString: "invalid log format 'xml'"},
		{name: "empty report dir", mutate: func(c *Config) { c.ReportDir = "" }, errorString: "report directory cannot be empty"},
		{name: "unknown timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, errorString: "invalid timezone 'Mars/Olympus'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestConfig_Validate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig(t)
	cfg.Port = "0"
	cfg.LogLevel = "nope"

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 0")
	assert.Contains(t, err.Error(), "invalid log level 'nope'")
}

func TestConfig_Validate_LeavesFilesystemAlone(t *testing.T) {
	cfg := validConfig(t)

	require.NoError(t, cfg.Validate())

	_, err := os.Stat(filepath.Dir(cfg.DBPath))
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "STORAGE_KEY", "LOG_LEVEL", "LOG_FORMAT", "REPORT_DIR", "COMPANY_NAME", "REPORT_TITLE", "TIMEZONE", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/expenses.db", cfg.DBPath)
	assert.Equal(t, "expenses-tracker-data", cfg.StorageKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestLoad_EnvironmentAndDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COMPANY_NAME=Acme Household\nREPORT_TITLE=From file\n"), 0o600))
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("REPORT_TITLE", "From env")
	t.Setenv("COMPANY_NAME", "")
	os.Unsetenv("COMPANY_NAME")

	cfg, err := Load(envFile, filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "Acme Household", cfg.CompanyName)
	assert.Equal(t, "From env", cfg.ReportTitle)
}

func TestConfig_Location(t *testing.T) {
	cfg := Config{Timezone: "Asia/Kolkata"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	_, offset := time.Date(2026, 10, 15, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 19800, offset)

	cfg.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
