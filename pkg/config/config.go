package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the EUR-Lex scraper
type Config struct {
	// HTTP service settings
	Server ServerConfig `yaml:"server" json:"server"`

	// Search endpoint and query parameters
	Search SearchConfig `yaml:"search" json:"search"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Port            int           `yaml:"port" json:"port"`
	StaticDir       string        `yaml:"static_dir" json:"static_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// SearchConfig holds the remote search site settings and the query that
// the scrape endpoint runs
type SearchConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	Origin    string        `yaml:"origin" json:"origin"`
	Query     string        `yaml:"query" json:"query"`
	DateFrom  string        `yaml:"date_from" json:"date_from"`
	DateTo    string        `yaml:"date_to" json:"date_to"`
	MaxPages  int           `yaml:"max_pages" json:"max_pages"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	File   string `yaml:"file" json:"file"`
	Format string `yaml:"format" json:"format"`
}

const (
	DefaultPort     = 3000
	DefaultMaxPages = 200
)

var dateLayout = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			StaticDir:       "public",
			ShutdownTimeout: 10 * time.Second,
		},
		Search: SearchConfig{
			BaseURL:   "https://eur-lex.europa.eu/search.html",
			Origin:    "https://eur-lex.europa.eu",
			Query:     "antidumping AND phosphate",
			DateFrom:  "2025-01-01",
			DateTo:    "2025-12-31",
			MaxPages:  DefaultMaxPages,
			Timeout:   30 * time.Second,
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
		},
		Logging: LoggingConfig{
			Level:  "info",
			File:   "",
			Format: "console",
		},
	}
}

// LoadFromEnv loads configuration from environment variables.
// PORT is honoured for compatibility with common hosting platforms;
// EURLEX_PORT takes precedence over it.
func (c *Config) LoadFromEnv() error {
	var errs []error

	for _, key := range []string{"PORT", "EURLEX_PORT"} {
		if v := os.Getenv(key); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s %q: %w", key, v, err))
				continue
			}
			c.Server.Port = port
		}
	}

	if dir := os.Getenv("EURLEX_STATIC_DIR"); dir != "" {
		c.Server.StaticDir = dir
	}
	if query := os.Getenv("EURLEX_QUERY"); query != "" {
		c.Search.Query = query
	}
	if from := os.Getenv("EURLEX_DATE_FROM"); from != "" {
		c.Search.DateFrom = from
	}
	if to := os.Getenv("EURLEX_DATE_TO"); to != "" {
		c.Search.DateTo = to
	}
	if maxPages := os.Getenv("EURLEX_MAX_PAGES"); maxPages != "" {
		val, err := strconv.Atoi(maxPages)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid EURLEX_MAX_PAGES %q: %w", maxPages, err))
		} else {
			c.Search.MaxPages = val
		}
	}
	if logLevel := os.Getenv("EURLEX_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("EURLEX_LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		"eurlexscraper.yaml",
		"eurlexscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "eurlexscraper", "config.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", c.Server.Port))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdown timeout cannot be negative"))
	}

	if c.Search.BaseURL == "" {
		errs = append(errs, errors.New("search base URL is required"))
	}
	if c.Search.Origin == "" {
		errs = append(errs, errors.New("search origin is required"))
	}
	if strings.TrimSpace(c.Search.Query) == "" {
		errs = append(errs, errors.New("search query is required"))
	}
	if !dateLayout.MatchString(c.Search.DateFrom) {
		errs = append(errs, fmt.Errorf("date_from %q must be YYYY-MM-DD", c.Search.DateFrom))
	}
	if !dateLayout.MatchString(c.Search.DateTo) {
		errs = append(errs, fmt.Errorf("date_to %q must be YYYY-MM-DD", c.Search.DateTo))
	}
	if c.Search.MaxPages < 0 {
		errs = append(errs, errors.New("max pages cannot be negative"))
	}
	if c.Search.Timeout < 0 {
		errs = append(errs, errors.New("search timeout cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, errors.New("invalid log format"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if port, ok := flags["port"].(int); ok && port > 0 {
		c.Server.Port = port
	}
	if dir, ok := flags["static-dir"].(string); ok && dir != "" {
		c.Server.StaticDir = dir
	}
	if query, ok := flags["query"].(string); ok && query != "" {
		c.Search.Query = query
	}
	if from, ok := flags["from"].(string); ok && from != "" {
		c.Search.DateFrom = from
	}
	if to, ok := flags["to"].(string); ok && to != "" {
		c.Search.DateTo = to
	}
	if maxPages, ok := flags["max-pages"].(int); ok && maxPages >= 0 {
		c.Search.MaxPages = maxPages
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Missing .env files are fine
	_ = godotenv.Load(".env")

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
