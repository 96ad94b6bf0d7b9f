package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/webterm/pkg/adapters/memory"
	"github.com/aretw0/webterm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunClientStoreContract(t, store)
}

func TestMemoryHistoryLog_Contract(t *testing.T) {
	ports.RunHistoryLogContract(t, memory.NewHistoryLog())
}

func TestMemoryStore_CopyOnWrite(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	val := []byte("abc")
	require.NoError(t, store.Write(ctx, "k", val))
	val[0] = 'z'

	got, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
