package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-catalog/pkg/catalog"
)

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := New(Config{BaseDir: dir})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	store, err := New(Config{BaseDir: dir, URLPrefix: "/static/"})
	require.NoError(t, err)

	url, err := store.Save(context.Background(), catalog.File{
		Name: "cover.jpg",
		Data: []byte("jpeg bytes"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/static/"))
	assert.True(t, strings.HasSuffix(url, "_cover.jpg"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := New(Config{BaseDir: dir})
	require.NoError(t, err)

	url, err := store.Save(context.Background(), catalog.File{
		Name: "../../etc/cover.jpg",
		Data: []byte("data"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_cover.jpg"))
}
