package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/typeb/pkg/adapters/memory"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/aretw0/typeb/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunKeyStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	pos := &domain.Positions{Sixes: 3}
	require.NoError(t, store.Save(ctx, keysheet.Sheet{Name: "k", Positions: pos}))
	pos.Sixes = 20

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Positions.Sixes)

	loaded.Positions.Sixes = 7
	again, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Positions.Sixes)
}
