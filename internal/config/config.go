// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session cookie goes to the OS keychain.
//
// Precedence, lowest first: built-in defaults, config.json, .env / .env.local,
// process environment. Command-line flags are applied on top by the cmd package.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apperrors "organizer/cli/internal/errors"
	"organizer/cli/internal/xdg"

	"github.com/joho/godotenv"
)

// Environment variables understood by Load.
const (
	EnvBaseURL     = "ORGANIZER_BASE_URL"
	EnvLogLevel    = "ORGANIZER_LOG_LEVEL"
	EnvTimeout     = "ORGANIZER_TIMEOUT_SECONDS"
	EnvOpenBrowser = "ORGANIZER_OPEN_BROWSER"
)

// Defaults applied when neither the file nor the environment set a value.
const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultLogLevel       = "info"
	DefaultTimeoutSeconds = 10
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL        string `json:"base_url"`
	LogLevel       string `json:"log_level"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	OpenBrowser    *bool  `json:"open_browser,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	open := true
	return Config{
		BaseURL:        DefaultBaseURL,
		LogLevel:       DefaultLogLevel,
		TimeoutSeconds: DefaultTimeoutSeconds,
		OpenBrowser:    &open,
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ShouldOpenBrowser reports whether navigation should launch a browser.
func (c Config) ShouldOpenBrowser() bool {
	return c.OpenBrowser == nil || *c.OpenBrowser
}

// Validate rejects configuration the client cannot work with.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return apperrors.Wrap(apperrors.ConfigInvalid, "base_url is not a URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("base_url %q must use http or https", c.BaseURL))
	}
	if u.Host == "" {
		return apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("base_url %q has no host", c.BaseURL))
	}
	if c.TimeoutSeconds < 0 {
		return apperrors.New(apperrors.ConfigInvalid, "timeout_seconds must not be negative")
	}
	return nil
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields defaults.
// Environment overrides are applied after the file.
func Load() (Config, error) {
	c, err := loadFile()
	if err != nil {
		return c, err
	}

	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	if err := applyEnv(&c); err != nil {
		return c, err
	}
	return c, nil
}

func loadFile() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, apperrors.Wrap(apperrors.ConfigInvalid, "parse "+p, err)
	}
	return c, nil
}

func applyEnv(c *Config) error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.Wrap(apperrors.ConfigInvalid, EnvTimeout+" must be an integer", err)
		}
		c.TimeoutSeconds = n
	}
	if v := os.Getenv(EnvOpenBrowser); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return apperrors.Wrap(apperrors.ConfigInvalid, EnvOpenBrowser+" must be a boolean", err)
		}
		c.OpenBrowser = &b
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Keys lists the settings that Set accepts.
var Keys = []string{"base_url", "log_level", "timeout_seconds", "open_browser"}

// Set changes one setting in the config file and saves it. Environment
// overrides are neither applied nor persisted.
func Set(key, value string) (Config, error) {
	c, err := loadFile()
	if err != nil {
		return c, err
	}
	switch key {
	case "base_url":
		c.BaseURL = value
	case "log_level":
		c.LogLevel = value
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return c, apperrors.Wrap(apperrors.ConfigInvalid, "timeout_seconds must be an integer", err)
		}
		c.TimeoutSeconds = n
	case "open_browser":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return c, apperrors.Wrap(apperrors.ConfigInvalid, "open_browser must be a boolean", err)
		}
		c.OpenBrowser = &b
	default:
		return c, apperrors.New(apperrors.ConfigInvalid, fmt.Sprintf("unknown setting %q", key))
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, Save(c)
}
