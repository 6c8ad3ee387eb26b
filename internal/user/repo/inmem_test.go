package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MisterMaks/rdrt-client/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TestFilenamePattern string = "internal_user_repo_inmem_test_*.jsonl"
	TestToken           string = "header.payload.signature"
)

func TestNewStorageInmem(t *testing.T) {
	tmpFile, err := os.CreateTemp("", TestFilenamePattern)
	require.NoError(t, err)
	defer func() {
		err = os.Remove(tmpFile.Name())
		require.NoError(t, err)
	}()

	storage, err := NewStorageInmem(tmpFile.Name())
	require.NoError(t, err)
	assert.NotNil(t, storage)
	assert.NoError(t, storage.Close())
}

func TestStorageInmem_Memory(t *testing.T) {
	storage, err := NewStorageInmem("")
	require.NoError(t, err)

	_, ok, err := storage.GetItem(user.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.SetItem(user.StorageKey, TestToken))

	value, ok, err := storage.GetItem(user.StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, TestToken, value)

	require.NoError(t, storage.RemoveItem(user.StorageKey))
	require.NoError(t, storage.RemoveItem(user.StorageKey))

	_, ok, err = storage.GetItem(user.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, storage.Close())
}

func TestStorageInmem_Journal(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "storage.jsonl")

	storage, err := NewStorageInmem(filename)
	require.NoError(t, err)
	require.NoError(t, storage.SetItem(user.StorageKey, "old"))
	require.NoError(t, storage.SetItem(user.StorageKey, TestToken))
	require.NoError(t, storage.SetItem("other", "value"))
	require.NoError(t, storage.RemoveItem("other"))
	require.NoError(t, storage.Close())

	reopened, err := NewStorageInmem(filename)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.GetItem(user.StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, TestToken, value)

	_, ok, err = reopened.GetItem("other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorageInmem_BrokenJournal(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "storage.jsonl")
	require.NoError(t, os.WriteFile(filename, []byte("not json\n"), 0600))

	_, err := NewStorageInmem(filename)
	assert.Error(t, err)
}
