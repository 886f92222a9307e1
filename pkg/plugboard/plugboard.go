// Package plugboard implements the letter substitution between the keyboard and the
// switch network.
package plugboard

import (
	"fmt"

	"github.com/aretw0/typeb/pkg/domain"
)

// Plugboard maps keyboard letters onto the machine's contacts and back.
// The zero value is not usable; build one with New or Identity.
type Plugboard struct {
	perm      string
	toContact [26]byte // keyboard letter -> contact letter
	toKey     [26]byte // contact letter -> keyboard letter
}

// New builds a plugboard from a 26-letter permutation. Character i of perm is the
// keyboard letter wired to contact i (domain.Alphabet[i]). Lower case is accepted.
// An empty string yields the identity plugboard.
func New(perm string) (*Plugboard, error) {
	if perm == "" {
		return Identity(), nil
	}
	if len(perm) != domain.Letters {
		return nil, fmt.Errorf("%w: want %d letters, got %d", domain.ErrInvalidPlugboard, domain.Letters, len(perm))
	}

	p := &Plugboard{}
	var seen [26]bool
	norm := make([]byte, domain.Letters)
	for i := 0; i < domain.Letters; i++ {
		key, ok := domain.Normalize(perm[i])
		if !ok {
			return nil, fmt.Errorf("%w: %q at index %d is not a letter", domain.ErrInvalidPlugboard, perm[i], i)
		}
		if seen[key-'A'] {
			return nil, fmt.Errorf("%w: letter %c appears twice", domain.ErrInvalidPlugboard, key)
		}
		seen[key-'A'] = true
		norm[i] = key

		contact := domain.Letter(i)
		p.toContact[key-'A'] = contact
		p.toKey[contact-'A'] = key
	}
	p.perm = string(norm)
	return p, nil
}

// Identity returns the straight-through plugboard.
func Identity() *Plugboard {
	p, _ := New(domain.Alphabet)
	return p
}

// Substitute maps an upper-case keyboard letter to the contact letter it feeds.
func (p *Plugboard) Substitute(letter byte) byte {
	return p.toContact[letter-'A']
}

// Invert maps a contact letter back to its keyboard letter.
func (p *Plugboard) Invert(letter byte) byte {
	return p.toKey[letter-'A']
}

// String returns the normalized permutation.
func (p *Plugboard) String() string {
	return p.perm
}
