// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Data    DataConfig
	Archive ArchiveConfig
	Search  SearchConfig
	Tickets TicketsConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig locates the saved graph.
type DataConfig struct {
	Dir       string // Base directory (default: ~/Cinema)
	GraphFile string // XML document (default: {dir}/cinema.xml)
}

// ArchiveConfig holds snapshot archive configuration.
type ArchiveConfig struct {
	Path string // Badger directory (default: {dir}/archive)
}

// SearchConfig holds movie index configuration.
type SearchConfig struct {
	IndexPath string // Empty keeps the index in memory
}

// TicketsConfig holds ticketing defaults.
type TicketsConfig struct {
	DefaultPrice decimal.Decimal // Price of generated tickets (default: 25.00)
	PassGrace    time.Duration   // Pass validity after the screening ends (default: 30m)
	PassSize     int             // QR code edge in pixels (default: 256)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
//
// args are the command-line arguments without the program name; the
// arguments left after the flags are returned.
func LoadConfig(args []string) (*Config, []string, error) {
	fs := flag.NewFlagSet("cinemactl", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataDir := fs.String("data-dir", "", "Base directory for cinema data")
	graphFile := fs.String("graph-file", "", "Path of the saved graph document")
	archivePath := fs.String("archive-path", "", "Path of the snapshot archive")
	indexPath := fs.String("index-path", "", "Path of the movie search index (default: in memory)")

	// Ticket flags
	ticketPrice := fs.String("ticket-price", "", "Default ticket price (default: 25.00)")
	passGrace := fs.String("pass-grace", "", "Pass validity after the screening ends (default: 30m)")
	passSize := fs.String("pass-size", "", "QR code size in pixels (default: 256)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	// Load .env file if it exists. Variables already set keep their value.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			Dir:       getConfigValue(*dataDir, "CINEMA_DATA_DIR", ""),
			GraphFile: getConfigValue(*graphFile, "CINEMA_GRAPH_FILE", ""),
		},
		Archive: ArchiveConfig{
			Path: getConfigValue(*archivePath, "CINEMA_ARCHIVE_PATH", ""),
		},
		Search: SearchConfig{
			IndexPath: getConfigValue(*indexPath, "CINEMA_INDEX_PATH", ""),
		},
		Tickets: TicketsConfig{
			PassSize: getIntConfigValue(*passSize, "CINEMA_PASS_SIZE", 256),
		},
	}

	priceStr := getConfigValue(*ticketPrice, "CINEMA_TICKET_PRICE", "25.00")
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ticket price %q: %w", priceStr, err)
	}
	cfg.Tickets.DefaultPrice = price

	graceStr := getConfigValue(*passGrace, "CINEMA_PASS_GRACE", "30m")
	grace, err := time.ParseDuration(graceStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid pass grace %q: %w", graceStr, err)
	}
	cfg.Tickets.PassGrace = grace

	if err := cfg.expandPaths(); err != nil {
		return nil, nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, fs.Args(), nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.Dir == "" || c.Data.GraphFile == "" {
		return errors.New("data paths cannot be empty after expansion")
	}

	if !c.Tickets.DefaultPrice.IsPositive() {
		return fmt.Errorf("invalid ticket price: %s (must be positive)", c.Tickets.DefaultPrice)
	}

	if c.Tickets.PassGrace < 0 {
		return fmt.Errorf("invalid pass grace: %s (must not be negative)", c.Tickets.PassGrace)
	}

	if c.Tickets.PassSize < 64 {
		return fmt.Errorf("invalid pass size: %d (must be at least 64 pixels)", c.Tickets.PassSize)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandPaths resolves the data directory and the paths that default into it.
// The search index stays in memory unless a path is given.
func (c *Config) expandPaths() error {
	defaultDir := ""
	if c.Data.Dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		defaultDir = filepath.Join(homeDir, "Cinema")
	}

	var err error
	if c.Data.Dir, err = expandPath(c.Data.Dir, defaultDir); err != nil {
		return err
	}
	if c.Data.GraphFile, err = expandPath(c.Data.GraphFile, filepath.Join(c.Data.Dir, "cinema.xml")); err != nil {
		return err
	}
	if c.Archive.Path, err = expandPath(c.Archive.Path, filepath.Join(c.Data.Dir, "archive")); err != nil {
		return err
	}
	if c.Search.IndexPath, err = expandPath(c.Search.IndexPath, ""); err != nil {
		return err
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}
