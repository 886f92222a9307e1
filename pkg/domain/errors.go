package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPlugboard is returned when a plugboard string is not a permutation of the alphabet.
var ErrInvalidPlugboard = errors.New("invalid plugboard")

// ErrInvalidSpeedAssignment is returned when the fast/medium/slow roles are not a permutation of {1,2,3}.
var ErrInvalidSpeedAssignment = errors.New("invalid speed assignment")

// ErrInvalidPosition is returned when a switch position is outside [0,24].
var ErrInvalidPosition = errors.New("invalid switch position")

// ErrInvalidWiring is returned when a wiring table is malformed.
var ErrInvalidWiring = errors.New("invalid wiring table")

// ErrInvalidKeySheet is returned when a key sheet cannot be parsed.
var ErrInvalidKeySheet = errors.New("invalid key sheet")

// ErrKeyNotFound is returned when a named key sheet cannot be found in the store.
var ErrKeyNotFound = errors.New("key not found")

// ErrCharacterClass is matched by every CharacterClassError.
var ErrCharacterClass = errors.New("character outside the machine alphabet")

// CharacterClassError reports the first character the machine refused to process.
type CharacterClassError struct {
	Char  rune
	Index int
}

func (e *CharacterClassError) Error() string {
	return fmt.Sprintf("%v: %q at index %d", ErrCharacterClass, e.Char, e.Index)
}

func (e *CharacterClassError) Unwrap() error {
	return ErrCharacterClass
}
