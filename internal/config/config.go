// Package config loads sprintdesk settings from ~/.sprintdesk/config.yaml,
// an optional .env file and SPRINTDESK_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvHome       = "SPRINTDESK_HOME"
	EnvBaseURL    = "SPRINTDESK_BASE_URL"
	EnvEmail      = "SPRINTDESK_EMAIL"
	EnvPassword   = "SPRINTDESK_PASSWORD"
	EnvTimeout    = "SPRINTDESK_TIMEOUT"
	EnvDateLayout = "SPRINTDESK_DATE_LAYOUT"
	EnvTimezone   = "SPRINTDESK_TIMEZONE"
	EnvDBPath     = "SPRINTDESK_DB_PATH"
)

// Defaults
const (
	DefaultBaseURL    = "http://localhost:5000"
	DefaultTimeout    = 15 * time.Second
	DefaultDateLayout = "Jan 2, 2006"
	DefaultTimezone   = "Local"
)

// Config represents the sprintdesk configuration.
type Config struct {
	BaseURL    string        `yaml:"base_url"`
	Email      string        `yaml:"email,omitempty"`
	Timeout    time.Duration `yaml:"timeout"`
	DateLayout string        `yaml:"date_layout"`
	Timezone   string        `yaml:"timezone"`
	DBPath     string        `yaml:"db_path,omitempty"` // empty means <home>/cache.db

	// Password is only ever read from the environment.
	Password string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		DateLayout: DefaultDateLayout,
		Timezone:   DefaultTimezone,
	}
}

// HomeDir returns the sprintdesk state directory: $SPRINTDESK_HOME or
// ~/.sprintdesk.
func HomeDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".sprintdesk"), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file, then applies .env from the working directory
// and the process environment.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path, ".env")
}

// LoadFrom reads the config file at path and overlays the dotenv file at
// envPath. Either file may be missing.
func LoadFrom(path, envPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dotenv := map[string]string{}
	if envPath != "" {
		dotenv, err = godotenv.Read(envPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envPath, err)
		}
		if dotenv == nil {
			dotenv = map[string]string{}
		}
	}

	if err := cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		EnvBaseURL:    &c.BaseURL,
		EnvEmail:      &c.Email,
		EnvPassword:   &c.Password,
		EnvDateLayout: &c.DateLayout,
		EnvTimezone:   &c.Timezone,
		EnvDBPath:     &c.DBPath,
	}
	for key, field := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// CachePath returns the SQLite cache path.
func (c *Config) CachePath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.db"), nil
}

// TrimmedBaseURL returns the base URL without a trailing slash.
func (c *Config) TrimmedBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Init writes the default configuration to path. An existing file is kept
// unless force is set. Reports whether a file was written.
func Init(path string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	if err := Save(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}
