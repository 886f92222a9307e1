package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/typeb/internal/logging"
	"github.com/aretw0/typeb/pkg/adapters/file"
	"github.com/aretw0/typeb/pkg/adapters/memory"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInput(t *testing.T) {
	t.Run("Text wins over stdin", func(t *testing.T) {
		got, err := ReadInput("HELLO", "", strings.NewReader("ignored"))
		require.NoError(t, err)
		assert.Equal(t, "HELLO", got)
	})

	t.Run("File drops trailing newline", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "msg.txt")
		require.NoError(t, os.WriteFile(path, []byte("ATTACK AT DAWN\n"), 0o600))
		got, err := ReadInput("", path, nil)
		require.NoError(t, err)
		assert.Equal(t, "ATTACK AT DAWN", got)
	})

	t.Run("Stdin", func(t *testing.T) {
		got, err := ReadInput("", "", strings.NewReader("ABC\r\n"))
		require.NoError(t, err)
		assert.Equal(t, "ABC", got)
	})

	t.Run("Both text and file", func(t *testing.T) {
		_, err := ReadInput("A", "b.txt", nil)
		assert.Error(t, err)
	})

	t.Run("Nothing", func(t *testing.T) {
		_, err := ReadInput("", "", nil)
		assert.Error(t, err)
	})
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "ZTXOD NWKCC MAV", Group("ZTXODNWKCCMAV", 5))
	assert.Equal(t, "ZTXOD NWKCC", Group("ZTX ODN\nWKCC", 5))
	assert.Equal(t, "A B", Group("A B", 0))
	assert.Equal(t, "", Group("", 5))
}

func TestOpenStore(t *testing.T) {
	s, err := OpenStore(StoreOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, s)

	s, err = OpenStore(StoreOptions{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)

	_, err = OpenStore(StoreOptions{Backend: "redis"})
	assert.Error(t, err)

	_, err = OpenStore(StoreOptions{Backend: "etcd"})
	assert.Error(t, err)
}

func TestOpenStore_Sealed(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	encoded := base64.StdEncoding.EncodeToString(key)

	active, old, err := DecodeSealKeys(encoded + "," + encoded)
	require.NoError(t, err)
	assert.Equal(t, key, active)
	assert.Len(t, old, 1)

	dir := t.TempDir()
	s, err := OpenStore(StoreOptions{Dir: dir, SealKey: active})
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, keysheet.Sheet{Name: "daily", Switches: "9-1,24,6-23"}))

	raw, err := os.ReadFile(filepath.Join(dir, "daily.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "9-1,24,6-23")

	sheet, err := s.Load(ctx, "daily")
	require.NoError(t, err)
	assert.Equal(t, "9-1,24,6-23", sheet.Switches)

	_, err = OpenStore(StoreOptions{Backend: "memory", SealKey: []byte("short")})
	assert.Error(t, err)

	_, _, err = DecodeSealKeys("not base64!")
	assert.Error(t, err)
}

func TestDecodeSealKeys_Length(t *testing.T) {
	good := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 32))
	short := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{2}, 16))

	_, _, err := DecodeSealKeys(good + "," + short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store key 2 is 16 bytes")

	_, _, err = DecodeSealKeys(short)
	assert.Error(t, err)

	active, old, err := DecodeSealKeys("")
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Empty(t, old)
}

func TestResolveSheet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	pos := domain.Positions{Sixes: 2}
	require.NoError(t, store.Save(ctx, keysheet.Sheet{
		Name:      "daily",
		Positions: &pos,
		Plugboard: "NOKTYUXEQLHBRMPDICJASVWGZF",
		Mode:      "typeb",
	}))

	t.Run("Stored key with overrides", func(t *testing.T) {
		sheet, err := ResolveSheet(ctx, KeyOptions{KeyName: "daily", Switches: "9-1,24,6-23", Policy: "strip"}, store)
		require.NoError(t, err)
		assert.Equal(t, "9-1,24,6-23", sheet.Switches)
		assert.Nil(t, sheet.Positions, "shorthand replaces explicit positions")
		assert.Equal(t, "NOKTYUXEQLHBRMPDICJASVWGZF", sheet.Plugboard)
		assert.Equal(t, "typeb", sheet.Mode)
		assert.Equal(t, "strip", sheet.Policy)

		_, err = sheet.Settings()
		assert.NoError(t, err)
	})

	t.Run("Sheet file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "monday.yaml")
		require.NoError(t, os.WriteFile(path, []byte("switches: 1-1,1,1-12\n"), 0o600))
		sheet, err := ResolveSheet(ctx, KeyOptions{SheetPath: path}, nil)
		require.NoError(t, err)
		assert.Equal(t, "monday", sheet.Name)
	})

	t.Run("Flags only", func(t *testing.T) {
		sheet, err := ResolveSheet(ctx, KeyOptions{Switches: "1-1,1,1-12"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "1-1,1,1-12", sheet.Switches)
	})

	t.Run("Missing key", func(t *testing.T) {
		_, err := ResolveSheet(ctx, KeyOptions{KeyName: "nope"}, store)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Conflicting sources", func(t *testing.T) {
		_, err := ResolveSheet(ctx, KeyOptions{KeyName: "daily", SheetPath: "x.yaml"}, store)
		assert.Error(t, err)
	})
}

func TestNewMachine(t *testing.T) {
	sheet := keysheet.Sheet{Switches: "9-1,24,6-23"}
	m, err := NewMachine(sheet, logging.NewNop(), true, domain.LifecycleHooks{})
	require.NoError(t, err)

	out, err := m.Encrypt("ATTACKATDAWN")
	require.NoError(t, err)
	assert.Equal(t, "YMRYFDAMSOFS", out)

	_, err = NewMachine(keysheet.Sheet{Plugboard: "AB"}, logging.NewNop(), false, domain.LifecycleHooks{})
	assert.ErrorIs(t, err, domain.ErrInvalidPlugboard)
}
