package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/AleeDe/nafaverse/internal/flagx"
	"github.com/AleeDe/nafaverse/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from zero values, so a file only overrides what it names.
type JSONConfig struct {
	BaseURL        *string         `json:"base_url"`
	GoogleLoginURL *string         `json:"google_login_url"`
	Timeout        *timex.Duration `json:"timeout"`
	DatabasePath   *string         `json:"db_path"`
	CallbackAddr   *string         `json:"callback_addr"`
	StrictRoutes   *bool           `json:"strict_routes"`
	LogFormat      *string         `json:"log_format"`
	LogLevel       *string         `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c or -config. Without
// either flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	overlay(&cfg.BaseURL, jc.BaseURL)
	overlay(&cfg.GoogleLoginURL, jc.GoogleLoginURL)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.CallbackAddr, jc.CallbackAddr)
	overlay(&cfg.StrictRoutes, jc.StrictRoutes)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.Timeout != nil {
		cfg.Timeout = time.Duration(jc.Timeout.Duration)
	}
	return nil
}

func overlay[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
