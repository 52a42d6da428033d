package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_StartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("sources.normative")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("sources.normative"))
}

func TestConfigStore_SetPersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("sources.normative", "/data/normative"))
	require.NoError(t, store.Set("database.dir", "/data/db"))

	// A fresh store over the same directory sees the values.
	store2, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/normative", store2.GetString("sources.normative"))
	assert.Equal(t, "/data/db", store2.GetString("database.dir"))
}

func TestConfigStore_DottedKeysBecomeTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("sources.normative", "/a"))
	require.NoError(t, store.Set("sources.expertise", "/b"))

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	assert.Contains(t, string(data), "[sources]")
}

func TestConfigStore_GetStringIgnoresNonStrings(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("limit", int64(5)))

	assert.Empty(t, store.GetString("limit"))
	val, ok := store.Get("limit")
	assert.True(t, ok)
	assert.EqualValues(t, 5, val)
}

func TestConfigStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}
