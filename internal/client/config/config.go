package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AleeDe/nafaverse/internal/client/client"
	"github.com/AleeDe/nafaverse/internal/filex"
)

// DefaultCallbackAddr is where the OAuth loopback listener binds unless
// configured otherwise.
const DefaultCallbackAddr = "127.0.0.1:8788"

// Config holds runtime settings for the NafaVerse CLI.
type Config struct {
	BaseURL string
	// GoogleLoginURL overrides the URL derived from BaseURL.
	GoogleLoginURL string
	Timeout        time.Duration

	DatabasePath string
	CallbackAddr string
	// StrictRoutes makes protected routes verify the token with the backend.
	StrictRoutes bool

	LogFormat string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = client.DefaultBaseURL
	c.GoogleLoginURL = ""
	c.Timeout = client.DefaultTimeout
	c.DatabasePath = filepath.Join(filex.DefaultDataDir(), "nafaverse.db")
	c.CallbackAddr = DefaultCallbackAddr
	c.StrictRoutes = false
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}

// LoadConfig constructs a Config from defaults, then overlays the
// environment, the JSON file and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
