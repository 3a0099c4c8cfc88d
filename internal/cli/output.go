package cli

import (
	"io"
	"os"
	"path/filepath"
)

// openOutput opens the output destination. An empty path means stdout,
// which is wrapped so callers can unconditionally Close.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// nopCloser wraps a writer with a no-op Close.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// cacheDir returns the cache directory using XDG standard (~/.cache/markout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "markout"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "markout"), nil
}
