// Package filex resolves where the client keeps its local files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppDirName is the directory created under the user config dir.
const AppDirName = "nafaverse"

// DefaultDataDir returns <user config dir>/nafaverse, falling back to the
// working directory when the platform has no config dir.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base, _ = os.Getwd()
	}
	return filepath.Join(base, AppDirName)
}

// EnsureParentDir creates the directory that will hold path. In-memory
// SQLite DSNs are left alone.
func EnsureParentDir(path string) error {
	if IsInMemory(path) {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// IsInMemory reports whether dsn names an SQLite in-memory database.
func IsInMemory(dsn string) bool {
	if dsn == "" || dsn == ":memory:" {
		return true
	}
	return strings.HasPrefix(dsn, "file:") && strings.Contains(dsn, "mode=memory")
}
