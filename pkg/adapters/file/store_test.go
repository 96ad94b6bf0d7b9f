package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/webterm/pkg/adapters/file"
	"github.com/aretw0/webterm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunClientStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := file.New(dir)

	require.NoError(t, store.Write(context.Background(), "terminal_session_id", []byte("session_1_abc")))

	data, err := os.ReadFile(filepath.Join(dir, "terminal_session_id"))
	require.NoError(t, err)
	assert.Equal(t, "session_1_abc", string(data))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Write(ctx, "../escape", []byte("x")))
	_, err := store.Read(ctx, "a/b")
	assert.Error(t, err)
	assert.Error(t, store.Clear(ctx, ""))
}

func TestFileStore_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))

	// BasePath points at a regular file, so MkdirAll fails
	store := file.New(blocker)
	assert.Error(t, store.Write(context.Background(), "k", []byte("v")))
}
