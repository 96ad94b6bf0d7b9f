package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/webterm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunHistoryLogContract runs a suite of tests to verify that a HistoryLog implementation
// adheres to the defined interface contract.
func RunHistoryLogContract(t *testing.T, log HistoryLog) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405.000000")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Append and Recent", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			err := log.Append(ctx, sessionID, domain.HistoryEntry{
				Command:   fmt.Sprintf("cmd-%d", i),
				Output:    fmt.Sprintf("out-%d", i),
				Timestamp: base.Add(time.Duration(i) * time.Second),
			})
			require.NoError(t, err, "Append should not return error")
		}

		entries, err := log.Recent(ctx, sessionID, 50)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		assert.Equal(t, "cmd-0", entries[0].Command)
		assert.Equal(t, "out-4", entries[4].Output)
		assert.True(t, entries[4].Timestamp.Equal(base.Add(4*time.Second)))
	})

	t.Run("Recent Is Capped And Chronological", func(t *testing.T) {
		entries, err := log.Recent(ctx, sessionID, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "cmd-3", entries[0].Command)
		assert.Equal(t, "cmd-4", entries[1].Command)
	})

	t.Run("Unknown Session", func(t *testing.T) {
		entries, err := log.Recent(ctx, "unknown-"+sessionID, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		other := sessionID + "-other"
		require.NoError(t, log.Append(ctx, other, domain.HistoryEntry{Command: "mine", Timestamp: base}))

		entries, err := log.Recent(ctx, other, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "mine", entries[0].Command)
	})

	t.Run("Concurrent Appends", func(t *testing.T) {
		shared := sessionID + "-shared"
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_ = log.Append(ctx, shared, domain.HistoryEntry{
					Command:   fmt.Sprintf("c%d", i),
					Timestamp: base.Add(time.Duration(i) * time.Millisecond),
				})
			}(i)
		}
		wg.Wait()

		entries, err := log.Recent(ctx, shared, 100)
		require.NoError(t, err)
		assert.Len(t, entries, 20)
	})

	t.Run("Empty Session ID", func(t *testing.T) {
		err := log.Append(ctx, "", domain.HistoryEntry{Command: "x"})
		assert.ErrorIs(t, err, domain.ErrEmptySessionID)
	})
}

// RunClientStoreContract verifies the ClientStore read/write/clear semantics.
func RunClientStoreContract(t *testing.T, store ClientStore) {
	ctx := context.Background()
	key := "contract-key-" + time.Now().Format("150405.000000")

	t.Run("Read Missing", func(t *testing.T) {
		_, err := store.Read(ctx, key)
		assert.True(t, errors.Is(err, ErrKeyNotFound), "expected ErrKeyNotFound, got %v", err)
	})

	t.Run("Write and Read", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, key, []byte(`["a"]`)))
		val, err := store.Read(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `["a"]`, string(val))

		require.NoError(t, store.Write(ctx, key, []byte(`["a","b"]`)))
		val, err = store.Read(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `["a","b"]`, string(val))
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, key))
		_, err := store.Read(ctx, key)
		assert.ErrorIs(t, err, ErrKeyNotFound)

		// Clearing twice is fine
		assert.NoError(t, store.Clear(ctx, key))
	})
}
