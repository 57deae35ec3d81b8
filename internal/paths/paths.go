// Package paths resolves the per-user locations bakus reads and writes.
//
// When running under sudo, paths resolve to the invoking user's directories
// (via SUDO_USER) rather than root's.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the home directory of the actual user.
func UserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		u, err := user.Lookup(sudoUser)
		if err == nil {
			return u.HomeDir, nil
		}
	}
	return os.UserHomeDir()
}

// BakusDir returns ~/.config/bakus for the actual user.
func BakusDir() (string, error) {
	homeDir, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bakus"), nil
}

// DatabasePath returns ~/.config/bakus/bakus.db
func DatabasePath() (string, error) {
	return inBakusDir("bakus.db")
}

// ConfigPath returns ~/.config/bakus/config.toml
func ConfigPath() (string, error) {
	return inBakusDir("config.toml")
}

// LogPath returns ~/.config/bakus/logs/bakus.log
func LogPath() (string, error) {
	return inBakusDir(filepath.Join("logs", "bakus.log"))
}

// ServeLockPath returns ~/.config/bakus/serve.lock, held while the local API runs
func ServeLockPath() (string, error) {
	return inBakusDir("serve.lock")
}

// ExpandHome replaces a leading ~ with the actual user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

func inBakusDir(name string) (string, error) {
	dir, err := BakusDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
