package vendoring

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
)

// Discover returns the regular files in dir (non-recursive) whose name
// matches pattern, sorted by name. Symlinks to regular files are included.
// Hidden files are only matched by a pattern that itself starts with a dot.
func Discover(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, vendorerrors.FileSystem("read directory", dir, err)
	}

	matchHidden := strings.HasPrefix(pattern, ".")
	var files []string
	for _, e := range entries {
		if !matchHidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, vendorerrors.ValidationFailed("pattern", err.Error())
		}
		if !ok {
			continue
		}

		full := filepath.Join(dir, e.Name())
		switch {
		case e.Type().IsRegular():
		case e.Type()&fs.ModeSymlink != 0:
			info, statErr := os.Stat(full)
			if statErr != nil || !info.Mode().IsRegular() {
				continue
			}
		default:
			continue
		}
		files = append(files, full)
	}
	return files, nil
}
