package config

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/imgvendor/internal/util/sets"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = ".imgvendor.yaml"

// Config holds the settings for one vendoring run. It is built once by the
// CLI and passed explicitly to every component.
type Config struct {
	// ImagesDir is the folder (relative to the document directory) that
	// receives downloaded images. It is a single path segment.
	ImagesDir string `yaml:"images_dir"`
	// Pattern selects documents inside the document directory (non-recursive).
	Pattern string `yaml:"pattern"`
	// Extensions lists the URL path extensions treated as images.
	Extensions []string `yaml:"extensions"`
	// AllowExtensionless also vendors URLs whose path has no extension,
	// such as "https://host/avatar/".
	AllowExtensionless bool `yaml:"allow_extensionless"`
	// RefreshFingerprint recomputes an existing frontmatter fingerprint after a rewrite.
	RefreshFingerprint bool `yaml:"refresh_fingerprint"`

	Network NetworkConfig `yaml:"network"`
	Logging LoggingConfig `yaml:"logging"`
}

// NetworkConfig represents HTTP fetch configuration
type NetworkConfig struct {
	RequestTimeout string `yaml:"request_timeout"` // Go duration, e.g. "10s"
	UserAgent      string `yaml:"user_agent"`
	HostInterval   string `yaml:"host_interval"` // minimum delay between requests to one host; empty disables
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ImagesDir:          "images",
		Pattern:            "*.md",
		Extensions:         []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg"},
		RefreshFingerprint: true,
		Network: NetworkConfig{
			RequestTimeout: "10s",
			UserAgent:      "imgvendor/1.0",
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// Timeout returns the parsed per-request timeout, falling back to 10s.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Network.RequestTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// HostInterval returns the parsed per-host request interval; zero when unset.
func (c *Config) HostInterval() time.Duration {
	if strings.TrimSpace(c.Network.HostInterval) == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Network.HostInterval)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ExtensionSet returns the configured extensions as a lower-case lookup set.
func (c *Config) ExtensionSet() sets.Set[string] {
	set := sets.New[string]()
	for _, ext := range c.Extensions {
		set.Add(strings.ToLower(ext))
	}
	return set
}

// Overrides carries CLI flag values. Zero values leave the loaded config untouched.
type Overrides struct {
	ImagesDir          string
	RequestTimeout     time.Duration
	UserAgent          string
	HostInterval       time.Duration
	AllowExtensionless *bool
	RefreshFingerprint *bool
	LogLevel           string
	LogFormat          string
}

// Apply overlays non-zero overrides onto c.
func (c *Config) Apply(o Overrides) {
	if o.ImagesDir != "" {
		c.ImagesDir = o.ImagesDir
	}
	if o.RequestTimeout > 0 {
		c.Network.RequestTimeout = o.RequestTimeout.String()
	}
	if o.UserAgent != "" {
		c.Network.UserAgent = o.UserAgent
	}
	if o.HostInterval > 0 {
		c.Network.HostInterval = o.HostInterval.String()
	}
	if o.AllowExtensionless != nil {
		c.AllowExtensionless = *o.AllowExtensionless
	}
	if o.RefreshFingerprint != nil {
		c.RefreshFingerprint = *o.RefreshFingerprint
	}
	if o.LogLevel != "" {
		c.Logging.Level = NormalizeLogLevel(o.LogLevel)
	}
	if o.LogFormat != "" {
		c.Logging.Format = NormalizeLogFormat(o.LogFormat)
	}
}
