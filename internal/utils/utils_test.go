package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNonEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore")
	content := "# comment\n\nbuild/\n   \n*.gen.py  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lines, err := ReadNonEmptyLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"build/", "*.gen.py"}, lines)
}

func TestReadNonEmptyLines_MissingFile(t *testing.T) {
	_, err := ReadNonEmptyLines(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(filepath.Join(dir, "nope")))

	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.False(t, DirectoryExists(file))
}

func TestFindGitRepoRoot_NotARepo(t *testing.T) {
	_, ok := FindGitRepoRoot(t.TempDir())
	assert.False(t, ok)
}
