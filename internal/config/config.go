// ABOUTME: Configuration loading and parsing for warden
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Default lifetimes, matching the classic nonce and cookie windows.
const (
	DefaultNonceLife  = 12 * time.Hour
	DefaultCookieLife = 7 * 24 * time.Hour
)

// Config represents the complete warden configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// StoreConfig selects and locates the credential backend
type StoreConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	Path    string `yaml:"path"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// CookieKey is the process-wide salting key. When empty, a key is
	// derived from the loaded credentials so secret edits rotate cookies
	// and signing tokens.
	CookieKey string `yaml:"cookie_key"`

	// BearerSecret enables the JWT bearer shunt when set.
	BearerSecret string `yaml:"bearer_secret"`

	// Private gates whether unauthenticated sessions are rejected at all.
	Private bool `yaml:"private"`

	CookieDomain  string `yaml:"cookie_domain"`
	SecureCookies bool   `yaml:"secure_cookies"`

	NonceLife  time.Duration `yaml:"-"`
	CookieLife time.Duration `yaml:"-"`

	// Raw string values for YAML unmarshaling
	NonceLifeRaw  string `yaml:"nonce_life"`
	CookieLifeRaw string `yaml:"cookie_life"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Config{
		Auth: AuthConfig{
			Private:    true,
			NonceLife:  DefaultNonceLife,
			CookieLife: DefaultCookieLife,
		},
	}
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse duration fields
	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	switch c.Store.Backend {
	case "file", "sqlite":
	case "":
		return fmt.Errorf("store.backend is required (file or sqlite)")
	default:
		return fmt.Errorf("unknown store.backend %q (want file or sqlite)", c.Store.Backend)
	}

	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	if c.Auth.NonceLife <= 0 {
		return fmt.Errorf("auth.nonce_life must be positive")
	}
	if c.Auth.CookieLife <= 0 {
		return fmt.Errorf("auth.cookie_life must be positive")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Auth.NonceLifeRaw != "" {
		cfg.Auth.NonceLife, err = time.ParseDuration(cfg.Auth.NonceLifeRaw)
		if err != nil {
			return fmt.Errorf("parsing nonce_life %q: %w", cfg.Auth.NonceLifeRaw, err)
		}
	}

	if cfg.Auth.CookieLifeRaw != "" {
		cfg.Auth.CookieLife, err = time.ParseDuration(cfg.Auth.CookieLifeRaw)
		if err != nil {
			return fmt.Errorf("parsing cookie_life %q: %w", cfg.Auth.CookieLifeRaw, err)
		}
	}

	return nil
}
