package vendoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscover_MatchesRegularFilesAndSymlinks(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "b.md", "")
	writeDoc(t, dir, "a.md", "")
	writeDoc(t, dir, "c.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.md"), 0o755))
	writeDoc(t, filepath.Join(dir, "sub.md"), "nested.md", "")
	require.NoError(t, os.Symlink(filepath.Join(dir, "a.md"), filepath.Join(dir, "link.md")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling.md")))

	files, err := Discover(dir, "*.md")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "link.md"),
	}, files)
}

func TestDiscover_CustomPattern(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "")
	writeDoc(t, dir, "b.markdown", "")

	files, err := Discover(dir, "*.markdown")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "b.markdown")}, files)
}

func TestDiscover_BadPattern(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "")

	_, err := Discover(dir, "[")
	require.Error(t, err)
}

func TestDiscover_SkipsHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "")
	writeDoc(t, dir, ".draft.md", "")

	files, err := Discover(dir, "*.md")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a.md")}, files)

	files, err = Discover(dir, ".*.md")
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, ".draft.md")}, files)
}
