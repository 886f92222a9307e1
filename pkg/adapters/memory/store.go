package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/aretw0/typeb/pkg/keysheet"
)

// Store implements ports.KeyStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]keysheet.Sheet
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]keysheet.Sheet),
	}
}

// Save keeps a copy of the sheet.
func (s *Store) Save(ctx context.Context, sheet keysheet.Sheet) error {
	if err := keysheet.ValidateName(sheet.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sheet.Name] = clone(sheet)
	return nil
}

// Load retrieves a sheet by name.
func (s *Store) Load(ctx context.Context, name string) (keysheet.Sheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sheet, ok := s.data[name]
	if !ok {
		return keysheet.Sheet{}, domain.ErrKeyNotFound
	}
	return clone(sheet), nil
}

// Delete removes the sheet.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored sheet names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// clone copies the pointer fields so callers can't mutate stored sheets.
func clone(sheet keysheet.Sheet) keysheet.Sheet {
	if sheet.Positions != nil {
		p := *sheet.Positions
		sheet.Positions = &p
	}
	if sheet.Speeds != nil {
		sp := *sheet.Speeds
		sheet.Speeds = &sp
	}
	return sheet
}
