package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Data: DataConfig{
			Dir:       "/some/path",
			GraphFile: "/some/path/cinema.xml",
		},
		Tickets: TicketsConfig{
			DefaultPrice: decimal.RequireFromString("25.00"),
			PassGrace:    30 * time.Minute,
			PassSize:     256,
		},
	}
}

// unsetEnv clears keys for the duration of the test, restoring them after.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key) //nolint:errcheck // Test setup
	}
}

var configKeys = []string{
	"ENV", "LOG_LEVEL", "CINEMA_DATA_DIR", "CINEMA_GRAPH_FILE", "CINEMA_ARCHIVE_PATH",
	"CINEMA_INDEX_PATH", "CINEMA_TICKET_PRICE", "CINEMA_PASS_GRACE", "CINEMA_PASS_SIZE",
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Tickets(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"zero price", func(c *Config) { c.Tickets.DefaultPrice = decimal.Zero }, "invalid ticket price"},
		{"negative price", func(c *Config) { c.Tickets.DefaultPrice = decimal.NewFromInt(-5) }, "invalid ticket price"},
		{"negative grace", func(c *Config) { c.Tickets.PassGrace = -time.Minute }, "invalid pass grace"},
		{"tiny pass", func(c *Config) { c.Tickets.PassSize = 10 }, "invalid pass size"},
		{"no graph file", func(c *Config) { c.Data.GraphFile = "" }, "data paths cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestExpandPaths_Defaults(t *testing.T) {
	cfg := &Config{Data: DataConfig{Dir: "/srv/cinema"}}

	require.NoError(t, cfg.expandPaths())

	assert.Equal(t, "/srv/cinema/cinema.xml", cfg.Data.GraphFile)
	assert.Equal(t, "/srv/cinema/archive", cfg.Archive.Path)
	assert.Empty(t, cfg.Search.IndexPath)
}

func TestExpandPaths_EmptyDirUsesHome(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.expandPaths())

	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup
	assert.Equal(t, filepath.Join(homeDir, "Cinema"), cfg.Data.Dir)
	assert.Equal(t, filepath.Join(homeDir, "Cinema", "cinema.xml"), cfg.Data.GraphFile)
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup

	got, err := expandPath("~/my-data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "my-data"), got)

	got, err = expandPath("/absolute/path/../to/data", "")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/to/data", got)

	got, err = expandPath("relative/path", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Contains(t, got, "relative/path")

	got, err = expandPath("", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", got)
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("TEST_ENV_KEY", "env-value")

	assert.Equal(t, "flag-value", getConfigValue("flag-value", "TEST_ENV_KEY", "default-value"))
	assert.Equal(t, "env-value", getConfigValue("", "TEST_ENV_KEY", "default-value"))
	assert.Equal(t, "default-value", getConfigValue("", "NONEXISTENT_KEY", "default-value"))
}

func TestGetIntConfigValue(t *testing.T) {
	t.Setenv("TEST_INT_KEY", "not-a-number")

	assert.Equal(t, 12, getIntConfigValue("12", "TEST_INT_KEY", 3))
	assert.Equal(t, 3, getIntConfigValue("", "TEST_INT_KEY", 3))
}

func TestLoadConfig(t *testing.T) {
	unsetEnv(t, configKeys...)
	dir := t.TempDir()

	envFile := filepath.Join(dir, ".env")
	content := `# Test env file
ENV=staging
LOG_LEVEL=debug
CINEMA_TICKET_PRICE="31.50"
CINEMA_PASS_GRACE=1h
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	// Environment beats .env.
	t.Setenv("LOG_LEVEL", "warn")

	cfg, rest, err := LoadConfig([]string{
		"-env-file", envFile,
		"-data-dir", dir,
		"-index-path", filepath.Join(dir, "index"),
		"search", "rejs",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"search", "rejs"}, rest)
	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, dir, cfg.Data.Dir)
	assert.Equal(t, filepath.Join(dir, "cinema.xml"), cfg.Data.GraphFile)
	assert.Equal(t, filepath.Join(dir, "archive"), cfg.Archive.Path)
	assert.Equal(t, filepath.Join(dir, "index"), cfg.Search.IndexPath)
	assert.True(t, cfg.Tickets.DefaultPrice.Equal(decimal.RequireFromString("31.50")))
	assert.Equal(t, time.Hour, cfg.Tickets.PassGrace)
	assert.Equal(t, 256, cfg.Tickets.PassSize)
}

func TestLoadConfig_FlagsBeatEnvironment(t *testing.T) {
	unsetEnv(t, configKeys...)
	t.Setenv("CINEMA_TICKET_PRICE", "40")
	t.Setenv("ENV", "production")

	cfg, _, err := LoadConfig([]string{
		"-env-file", filepath.Join(t.TempDir(), "missing.env"),
		"-data-dir", t.TempDir(),
		"-ticket-price", "19.90",
	})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.True(t, cfg.Tickets.DefaultPrice.Equal(decimal.RequireFromString("19.90")))
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"price", []string{"-ticket-price", "free"}, "invalid ticket price"},
		{"grace", []string{"-pass-grace", "soon"}, "invalid pass grace"},
		{"environment", []string{"-env", "qa"}, "invalid environment"},
		{"unknown flag", []string{"-colour", "red"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, configKeys...)
			args := append([]string{"-env-file", filepath.Join(t.TempDir(), "none"), "-data-dir", t.TempDir()}, tt.args...)

			_, _, err := LoadConfig(args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
