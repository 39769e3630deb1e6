package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/AleeDe/nafaverse/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvBaseURL        = "NAFA_BASE_URL"
	EnvGoogleLoginURL = "NAFA_GOOGLE_LOGIN_URL"
	EnvTimeout        = "NAFA_TIMEOUT"
	EnvDatabasePath   = "NAFA_DB_PATH"
	EnvCallbackAddr   = "NAFA_CALLBACK_ADDR"
	EnvStrictRoutes   = "NAFA_STRICT_ROUTES"
	EnvLogFormat      = "NAFA_LOG_FORMAT"
	EnvLogLevel       = "NAFA_LOG_LEVEL"
)

// parseEnv loads the dotenv file, if any, and copies NAFA_* variables into
// cfg. Variables already present in the process environment are not
// overwritten by the file. A missing ./.env is fine; a missing file named
// with -e is an error.
func parseEnv(cfg *Config, args []string) error {
	path := flagx.EnvFile(args)
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	setString(&cfg.BaseURL, EnvBaseURL)
	setString(&cfg.GoogleLoginURL, EnvGoogleLoginURL)
	setString(&cfg.DatabasePath, EnvDatabasePath)
	setString(&cfg.CallbackAddr, EnvCallbackAddr)
	setString(&cfg.LogFormat, EnvLogFormat)
	setString(&cfg.LogLevel, EnvLogLevel)

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvStrictRoutes); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrictRoutes, err)
		}
		cfg.StrictRoutes = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// parseTimeout accepts a Go duration ("15s") or a bare number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
