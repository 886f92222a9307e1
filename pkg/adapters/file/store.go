package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
)

const ext = ".yaml"

// Store implements ports.KeyStore using the local filesystem.
// Each sheet is a YAML file named after the sheet in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".typeb/keys".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".typeb", "keys")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.BasePath, name+ext)
}

// Save writes the sheet atomically: temp file in the same directory, fsync, rename.
func (s *Store) Save(ctx context.Context, sheet keysheet.Sheet) error {
	if err := keysheet.ValidateName(sheet.Name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0o700); err != nil {
		return fmt.Errorf("failed to ensure key directory: %w", err)
	}

	data, err := sheet.Encode()
	if err != nil {
		return fmt.Errorf("failed to marshal key sheet: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+sheet.Name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows refuses to rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	dest := s.path(sheet.Name)
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads a sheet by name.
func (s *Store) Load(ctx context.Context, name string) (keysheet.Sheet, error) {
	if err := keysheet.ValidateName(name); err != nil {
		return keysheet.Sheet{}, err
	}

	sheet, err := keysheet.Load(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return keysheet.Sheet{}, domain.ErrKeyNotFound
		}
		return keysheet.Sheet{}, err
	}
	sheet.Name = name
	return sheet, nil
}

// Delete removes the sheet file.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := keysheet.ValidateName(name); err != nil {
		return err
	}

	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key sheet: %w", err)
	}
	return nil
}

// List returns the names of all sheet files, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list key sheets: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	sort.Strings(names)
	return names, nil
}
