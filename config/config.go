// Package config reads the tracker settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file. Variables already set in the environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/warp/expense-tracker/ledger"
	"github.com/warp/expense-tracker/logging"
)

type Config struct {
	// HTTP Server
	Port        string
	CORSOrigins []string

	// Storage
	DBPath     string
	StorageKey string

	// Logging
	LogLevel  string
	LogFormat string

	// Reports
	ReportDir   string
	CompanyName string
	ReportTitle string
	Timezone    string
}

// Load reads the configuration. files are .env files to seed the
// environment from; missing files are skipped.
func Load(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		DBPath:     getEnv("DB_PATH", "./data/expenses.db"),
		StorageKey: getEnv("STORAGE_KEY", ledger.DefaultStorageKey),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", logging.FormatText),

		ReportDir:   getEnv("REPORT_DIR", "./reports"),
		CompanyName: getEnv("COMPANY_NAME", ""),
		ReportTitle: getEnv("REPORT_TITLE", ""),
		Timezone:    getEnv("TIMEZONE", "Local"),
	}
	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		problems = append(problems, "storage key cannot be empty")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	if f := strings.ToLower(c.LogFormat); f != logging.FormatText && f != logging.FormatJSON {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be '%s' or '%s'", c.LogFormat, logging.FormatText, logging.FormatJSON))
	}

	if c.ReportDir == "" {
		problems = append(problems, "report directory cannot be empty")
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Location resolves Timezone; "" and "Local" mean the machine's zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %v", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
