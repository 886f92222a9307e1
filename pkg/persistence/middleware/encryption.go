package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/typeb/pkg/keysheet"
	"github.com/aretw0/typeb/pkg/ports"
)

// EncryptionConfig holds the keys for sealing and opening sheets.
type EncryptionConfig struct {
	// ActiveKey seals new sheets. Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are tried, in order, when the active key cannot open a sheet.
	// This enables rotation without re-sealing every stored sheet first.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.KeyStore
	config EncryptionConfig
}

// NewEncryptionMiddleware seals every saved sheet with AES-GCM. Only the name stays in
// clear text, so List keeps working on the underlying store.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, errors.New("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.KeyStore) ports.KeyStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, sheet keysheet.Sheet) error {
	if err := keysheet.ValidateName(sheet.Name); err != nil {
		return err
	}

	plainText, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal key sheet: %w", err)
	}

	// The name is bound as additional data so a sealed sheet can't be renamed.
	ciphertext, err := encrypt(plainText, m.config.ActiveKey, []byte(sheet.Name))
	if err != nil {
		return fmt.Errorf("failed to seal key sheet: %w", err)
	}

	envelope := keysheet.Sheet{
		Name:   sheet.Name,
		Sealed: base64.StdEncoding.EncodeToString(ciphertext),
	}
	return m.next.Save(ctx, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, name string) (keysheet.Sheet, error) {
	envelope, err := m.next.Load(ctx, name)
	if err != nil {
		return keysheet.Sheet{}, err
	}

	if envelope.Sealed == "" {
		// Fail secure: once sealing is configured, plain sheets are not trusted.
		return keysheet.Sheet{}, fmt.Errorf("key sheet %q is not sealed", name)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Sealed)
	if err != nil {
		return keysheet.Sheet{}, fmt.Errorf("failed to decode sealed sheet: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, []byte(name), m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return keysheet.Sheet{}, fmt.Errorf("failed to open key sheet %q: %w", name, err)
	}

	var sheet keysheet.Sheet
	if err := json.Unmarshal(plainText, &sheet); err != nil {
		return keysheet.Sheet{}, fmt.Errorf("failed to unmarshal opened sheet: %w", err)
	}
	return sheet, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plaintext, key, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, aad), nil
}

func decryptWithRotation(ciphertext, aad, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey, aad); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key, aad); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext, key, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], aad)
}
