// Package config loads runtime configuration for the NafaVerse CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-e or -env, otherwise ./.env when present) and NAFA_*
//     environment variables.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   backend base URL
//	-t int      request timeout (seconds)
//	-d string   path of the local SQLite database
//	-l string   loopback address of the OAuth callback listener
//	-s          strict route check (verify the token with the backend)
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "base_url": "https://nafaversebackend.onrender.com/api/",
//	  "timeout": "10s",
//	  "db_path": "/home/me/.config/nafaverse/nafaverse.db",
//	  "callback_addr": "127.0.0.1:8788",
//	  "strict_routes": true,
//	  "log_format": "json",
//	  "log_level": "debug"
//	}
package config
