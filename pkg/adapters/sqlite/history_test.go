package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/webterm/pkg/adapters/sqlite"
	"github.com/aretw0/webterm/pkg/domain"
	"github.com/aretw0/webterm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteHistoryLog_Contract(t *testing.T) {
	log, err := sqlite.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer log.Close()

	ports.RunHistoryLogContract(t, log)
}

func TestSQLiteHistoryLog_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	ts := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	log, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, log.Append(ctx, "s1", domain.HistoryEntry{Command: "uptime", Output: "up", Timestamp: ts}))
	require.NoError(t, log.Close())

	log, err = sqlite.Open(path)
	require.NoError(t, err)
	defer log.Close()

	entries, err := log.Recent(ctx, "s1", 50)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "uptime", entries[0].Command)
	assert.True(t, entries[0].Timestamp.Equal(ts))
}

func TestSQLiteHistoryLog_InMemory(t *testing.T) {
	log, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	require.NoError(t, log.Append(ctx, "s", domain.HistoryEntry{Command: "a", Timestamp: time.Now()}))

	entries, err := log.Recent(ctx, "s", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
