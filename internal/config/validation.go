package config

import (
	"path/filepath"
	"strings"
	"time"

	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
)

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.ImagesDir == "" {
		return vendorerrors.ValidationFailed("images_dir", "must not be empty")
	}
	if strings.ContainsAny(c.ImagesDir, `/\`) || c.ImagesDir == "." || c.ImagesDir == ".." {
		return vendorerrors.ValidationFailed("images_dir", "must be a single directory name")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return vendorerrors.ValidationFailed("pattern", err.Error())
	}
	if len(c.Extensions) == 0 {
		return vendorerrors.ValidationFailed("extensions", "at least one image extension is required")
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return vendorerrors.ValidationFailed("extensions", "invalid extension "+`"`+ext+`"`)
		}
	}
	if d, err := time.ParseDuration(c.Network.RequestTimeout); err != nil || d <= 0 {
		return vendorerrors.ValidationFailed("network.request_timeout", "must be a positive duration")
	}
	if c.Network.HostInterval != "" {
		if d, err := time.ParseDuration(c.Network.HostInterval); err != nil || d < 0 {
			return vendorerrors.ValidationFailed("network.host_interval", "must be a non-negative duration")
		}
	}
	return nil
}
