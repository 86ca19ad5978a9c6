package fileutils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/txtag/internal/tagerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(file, []byte("a,b,c\n"), 0600))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
}

func TestResolvePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "in.csv")

	assert.Equal(t, "in.csv", ResolvePath("", "in.csv"))
	assert.Equal(t, filepath.Join("data", "in.csv"), ResolvePath("data", "in.csv"))
	assert.Equal(t, abs, ResolvePath("data", abs))
}

func TestOpenInput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	f, err := OpenInput(file)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = OpenInput(filepath.Join(dir, "missing.csv"))
	var resErr *tagerror.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "open", resErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = OpenInput(dir)
	assert.True(t, errors.As(err, &resErr))
}

func TestCreateOutput_CreatesParents(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")

	f, err := CreateOutput(out)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, FileExists(out))
}

func TestCreateOutput_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := CreateOutput(filepath.Join(blocker, "out.csv"))
	var resErr *tagerror.ResourceError
	require.True(t, errors.As(err, &resErr))
	assert.Equal(t, "create", resErr.Op)
}
