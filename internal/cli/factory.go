package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/typeb"
	"github.com/aretw0/typeb/pkg/adapters/file"
	"github.com/aretw0/typeb/pkg/adapters/memory"
	"github.com/aretw0/typeb/pkg/adapters/redis"
	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/aretw0/typeb/pkg/persistence/middleware"
	"github.com/aretw0/typeb/pkg/ports"
)

// KeyOptions are the key-selection flags shared by encrypt, decrypt and inspect.
// A base sheet comes from --key-sheet (a YAML file) or --key (a stored name); the
// remaining flags override its fields.
type KeyOptions struct {
	SheetPath string
	KeyName   string
	Switches  string
	Plugboard string
	Mode      string
	Policy    string
}

// StoreOptions select the key store backend.
type StoreOptions struct {
	Backend   string // file, redis or memory
	Dir       string
	RedisAddr string
	RedisDB   int

	// SealKey, when set, seals sheets at rest with AES-256-GCM (32 bytes).
	SealKey []byte
	// OldSealKeys can still open sheets sealed before a key rotation.
	OldSealKeys [][]byte
}

// OpenStore builds the configured key store.
func OpenStore(opts StoreOptions) (ports.KeyStore, error) {
	var store ports.KeyStore
	switch strings.ToLower(opts.Backend) {
	case "", "file":
		store = file.New(opts.Dir)
	case "redis":
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis store needs --redis-addr")
		}
		store = redis.New(opts.RedisAddr, "", opts.RedisDB)
	case "memory":
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown store %q (want file, redis or memory)", opts.Backend)
	}

	if opts.SealKey == nil {
		return store, nil
	}
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    opts.SealKey,
		FallbackKeys: opts.OldSealKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("store key: %w", err)
	}
	return middleware.Chain(store, mw), nil
}

// DecodeSealKeys parses comma-separated base64 AES-256 keys; the first is the active
// one. Every key must decode to 32 bytes.
func DecodeSealKeys(s string) ([]byte, [][]byte, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil, nil
	}
	var keys [][]byte
	for _, part := range strings.Split(s, ",") {
		k, err := base64.StdEncoding.DecodeString(strings.TrimSpace(part))
		if err != nil {
			return nil, nil, fmt.Errorf("store key is not base64: %w", err)
		}
		if len(k) != 32 {
			return nil, nil, fmt.Errorf("store key %d is %d bytes, want 32", len(keys)+1, len(k))
		}
		keys = append(keys, k)
	}
	return keys[0], keys[1:], nil
}

// ResolveSheet assembles the sheet the command will run with.
func ResolveSheet(ctx context.Context, opts KeyOptions, store ports.KeyStore) (keysheet.Sheet, error) {
	var sheet keysheet.Sheet
	switch {
	case opts.SheetPath != "" && opts.KeyName != "":
		return sheet, fmt.Errorf("use either --key-sheet or --key, not both")
	case opts.SheetPath != "":
		s, err := keysheet.Load(opts.SheetPath)
		if err != nil {
			return sheet, err
		}
		sheet = s
	case opts.KeyName != "":
		if store == nil {
			return sheet, fmt.Errorf("--key needs a key store")
		}
		s, err := store.Load(ctx, opts.KeyName)
		if err != nil {
			return sheet, fmt.Errorf("key %q: %w", opts.KeyName, err)
		}
		sheet = s
	}

	if opts.Switches != "" {
		sheet.Switches = opts.Switches
		sheet.Positions, sheet.Speeds = nil, nil
	}
	if opts.Plugboard != "" {
		sheet.Plugboard = opts.Plugboard
	}
	if opts.Mode != "" {
		sheet.Mode = opts.Mode
	}
	if opts.Policy != "" {
		sheet.Policy = opts.Policy
	}
	return sheet, nil
}

// NewMachine builds a machine for the sheet with CLI conventions: the logger is always
// attached and debug runs also log every letter.
func NewMachine(sheet keysheet.Sheet, logger *slog.Logger, debug bool, hooks domain.LifecycleHooks) (*typeb.Machine, error) {
	if debug {
		hooks = hooks.Merge(createDebugHooks(logger))
	}
	m, err := typeb.New(
		typeb.WithKeySheet(sheet),
		typeb.WithLogger(logger),
		typeb.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing machine: %w", err)
	}
	return m, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLetter: func(ctx context.Context, e *domain.LetterEvent) {
			logger.Debug("letter",
				"index", e.Index,
				"class", e.Class.String(),
				"positions", e.Positions.String(),
				"stepped", len(e.Stepped),
			)
		},
	}
}
