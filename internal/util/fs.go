package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates path and its parents with 0755 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// SafeJoin places the last element of name directly under root. Names that
// reduce to nothing, ".", or ".." are rejected.
func SafeJoin(root, name string) (string, error) {
	base := filepath.Base(filepath.Clean(string(filepath.Separator) + name))
	switch base {
	case string(filepath.Separator), ".", "..":
		return "", fmt.Errorf("unsafe file name %q", name)
	}
	return filepath.Join(root, base), nil
}
