package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawire/chlog/pkg/fsutil"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	filename := filepath.Join(dir, "CHANGES.txt")

	require.NoError(t, fsutil.WriteFileAtomic(filename, []byte("one\n")))
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(data))

	// replacing keeps the permission bits
	require.NoError(t, os.Chmod(filename, 0o600))
	require.NoError(t, fsutil.WriteFileAtomic(filename, []byte("two\n")))
	data, err = os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(data))
	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	filename := filepath.Join(t.TempDir(), "CHANGES.txt")
	require.NoError(t, os.WriteFile(filename, []byte("content\n"), 0o644))

	data, err := fsutil.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(data))

	_, err = fsutil.ReadFile(filepath.Join(t.TempDir(), "no-such-file"))
	assert.Error(t, err)
}
