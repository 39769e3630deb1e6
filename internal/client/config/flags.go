package config

import (
	"flag"
	"io"
	"time"

	"github.com/AleeDe/nafaverse/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// listed here are parsed; the rest of args is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-l", "-s", "-log_format", "-log_level"})

	fs := flag.NewFlagSet("nafaverse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.CallbackAddr, "l", cfg.CallbackAddr, "OAuth callback listen address")
	fs.BoolVar(&cfg.StrictRoutes, "s", cfg.StrictRoutes, "verify the token with the backend on protected routes")
	fs.StringVar(&cfg.LogFormat, "log_format", cfg.LogFormat, "text, json or zap")
	fs.StringVar(&cfg.LogLevel, "log_level", cfg.LogLevel, "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["t"] {
		cfg.Timeout = time.Duration(*timeout) * time.Second
	}
	return nil
}
