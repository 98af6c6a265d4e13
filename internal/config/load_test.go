package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vendorerrors "git.home.luguber.info/inful/imgvendor/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imgvendor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_MatchesBuiltInConstants(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, "*.md", cfg.Pattern)
	assert.ElementsMatch(t, []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".svg"}, cfg.Extensions)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Zero(t, cfg.HostInterval())
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysFileOnDefaults(t *testing.T) {
	path := writeConfig(t, `
images_dir: assets
extensions: [PNG, ".Jpg"]
network:
  request_timeout: 3s
  host_interval: 250ms
logging:
  level: DEBUG
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "assets", cfg.ImagesDir)
	assert.Equal(t, "*.md", cfg.Pattern)
	assert.Equal(t, []string{".png", ".jpg"}, cfg.Extensions)
	assert.Equal(t, 3*time.Second, cfg.Timeout())
	assert.Equal(t, 250*time.Millisecond, cfg.HostInterval())
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.True(t, cfg.RefreshFingerprint)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("IMGVENDOR_TEST_UA", "docs-bot/2.0")
	path := writeConfig(t, "network:\n  user_agent: ${IMGVENDOR_TEST_UA}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "docs-bot/2.0", cfg.Network.UserAgent)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, vendorerrors.IsCategory(err, vendorerrors.CategoryConfig))
}

func TestLoadOrDefault_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"nested images dir": "images_dir: a/b\n",
		"zero timeout":      "network:\n  request_timeout: 0s\n",
		"bad interval":      "network:\n  host_interval: soon\n",
		"empty extensions":  "extensions: []\n",
		"bad pattern":       "pattern: \"[\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			assert.True(t, vendorerrors.IsCategory(err, vendorerrors.CategoryValidation), "got %v", err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "images_dir: [unterminated\n"))
	require.Error(t, err)
	assert.True(t, vendorerrors.IsCategory(err, vendorerrors.CategoryConfig))
}

func TestApply_OnlyNonZeroOverrides(t *testing.T) {
	cfg := Default()
	off := false
	cfg.Apply(Overrides{
		RequestTimeout:     2 * time.Second,
		UserAgent:          "ua",
		RefreshFingerprint: &off,
		LogFormat:          "JSON",
	})

	assert.Equal(t, "images", cfg.ImagesDir)
	assert.Equal(t, 2*time.Second, cfg.Timeout())
	assert.Equal(t, "ua", cfg.Network.UserAgent)
	assert.False(t, cfg.RefreshFingerprint)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = Init(path, false)
	require.Error(t, err)
	require.NoError(t, Init(path, true))
}

func TestLoadEnvFiles_DoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("IMGVENDOR_TEST_A=fromfile\nIMGVENDOR_TEST_B=fromfile\n"), 0o600))
	t.Setenv("IMGVENDOR_TEST_A", "fromenv")
	t.Setenv("IMGVENDOR_TEST_B", "")
	require.NoError(t, os.Unsetenv("IMGVENDOR_TEST_B"))

	loaded := LoadEnvFiles()

	assert.Equal(t, []string{".env"}, loaded)
	assert.Equal(t, "fromenv", os.Getenv("IMGVENDOR_TEST_A"))
	assert.Equal(t, "fromfile", os.Getenv("IMGVENDOR_TEST_B"))
}
