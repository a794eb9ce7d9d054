// Package fsutil holds small filesystem helpers shared by the config loader
// and the command line.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// ~/.config/gatrack/config.yaml
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// FirstExisting expands each candidate and returns the first one naming an
// existing regular file.
func FirstExisting(candidates ...string) (string, bool) {
	for _, c := range candidates {
		p, err := ExpandHome(c)
		if err != nil || p == "" {
			continue
		}
		fi, err := os.Stat(p)
		if err == nil && fi.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
