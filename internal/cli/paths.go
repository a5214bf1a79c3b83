package cli

import (
	"os"
	"path/filepath"
)

// appName is used for cache and config directory names.
const appName = "waveforge"

// cacheDir returns the directory used for cached components, meshes, and
// simulation results. Honors XDG_CACHE_HOME, falling back to ~/.cache.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
