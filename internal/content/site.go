package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// MarkerFile identifies a Jekyll site root.
const MarkerFile = "_config.yml"

// FindRoot walks up from start looking for a directory containing MarkerFile.
func FindRoot(start string) (root string, found bool, err error) {
	dir := filepath.Clean(strings.TrimSpace(start))
	if dir == "" || dir == "." {
		wd, err := os.Getwd()
		if err != nil {
			return "", false, errIO("getwd", start, err)
		}
		dir = wd
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", false, errIO("abs", start, err)
	}

	for {
		st, statErr := os.Stat(filepath.Join(dir, MarkerFile))
		switch {
		case statErr == nil && !st.IsDir():
			return dir, true, nil
		case statErr != nil && !errors.Is(statErr, os.ErrNotExist):
			return "", false, errIO("stat", filepath.Join(dir, MarkerFile), statErr)
		default:
			// keep walking up
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// ResolveRoot is FindRoot that degrades to start (made absolute) when no marker is
// found or the walk fails.
func ResolveRoot(start string) string {
	if root, ok, err := FindRoot(start); err == nil && ok {
		return root
	}
	if strings.TrimSpace(start) == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if abs, err := filepath.Abs(start); err == nil {
		return abs
	}
	return start
}
