package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunKeyStoreContract runs a suite of tests to verify that a KeyStore implementation
// adheres to the defined interface contract.
func RunKeyStoreContract(t *testing.T, store KeyStore) {
	ctx := context.Background()
	name := "contract-key-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sheet := keysheet.Sheet{
			Name:      name,
			Switches:  "9-1,24,6-23",
			Plugboard: "NOKTYUXEQLHBRMPDICJASVWGZF",
			Mode:      string(domain.ModeTypeB),
			Notes:     "contract",
		}

		err := store.Save(ctx, sheet)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sheet.Switches, loaded.Switches)
		assert.Equal(t, sheet.Plugboard, loaded.Plugboard)
		assert.Equal(t, sheet.Mode, loaded.Mode)
		assert.Equal(t, name, loaded.Name)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, keysheet.Sheet{Name: name, Switches: "1-1,1,1-12"}))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "1-1,1,1-12", loaded.Switches)
		assert.Empty(t, loaded.Plugboard)
	})

	t.Run("Save Rejects Empty Name", func(t *testing.T) {
		err := store.Save(ctx, keysheet.Sheet{Switches: "1-1,1,1-12"})
		assert.ErrorIs(t, err, domain.ErrInvalidKeySheet)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, keysheet.Sheet{Name: name, Switches: "1-1,1,1-12"}))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound, "Load after Delete should return ErrKeyNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing sheet is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-b"
		id2 := name + "-a"
		_ = store.Save(ctx, keysheet.Sheet{Name: id1, Switches: "1-1,1,1-12"})
		_ = store.Save(ctx, keysheet.Sheet{Name: id2, Switches: "2-2,2,2-21"})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsNonDecreasing(t, names)
	})
}
