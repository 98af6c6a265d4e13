package assets

import (
	"os"
	"path/filepath"

	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
)

// Save resolves the filename for rawURL and writes data to it verbatim.
func (r *Resolver) Save(rawURL string, data []byte) (string, error) {
	name := r.Resolve(rawURL)
	target := filepath.Join(r.dir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", vendorerrors.FileSystem("write image", target, err)
	}
	return name, nil
}

// EnsureDir creates the images directory if it is missing.
func (r *Resolver) EnsureDir() error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return vendorerrors.FileSystem("create images directory", r.dir, err)
	}
	return nil
}
