// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold path, with owner-
// and group-only permissions.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// IsPlainPath reports whether dsn names a file directly, as opposed to a
// "file:" URI, a DSN with query options or the SQLite in-memory name.
func IsPlainPath(dsn string) bool {
	if dsn == "" || dsn == ":memory:" {
		return false
	}
	return !strings.Contains(dsn, "?") && !strings.HasPrefix(dsn, "file:")
}
