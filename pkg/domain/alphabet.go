package domain

// Alphabet lists the 26 letters in machine contact order: the six class first,
// then the twenty class. Contact n is the letter Alphabet[n].
const Alphabet = "AEIOUYBCDFGHJKLMNPQRSTVWXZ"

// Letters is the number of contacts on the plugboard.
const Letters = len(Alphabet)

// SixesSize and TwentiesSize are the logical domains of the two switch classes.
const (
	SixesSize    = 6
	TwentiesSize = 20
)

// Class identifies which half of the switch network a contact belongs to.
type Class uint8

const (
	ClassSixes    Class = iota // A E I O U Y
	ClassTwenties              // the remaining 20 letters
)

func (c Class) String() string {
	switch c {
	case ClassSixes:
		return "sixes"
	case ClassTwenties:
		return "twenties"
	default:
		return "unknown"
	}
}

var contactOf [256]int8

func init() {
	for i := range contactOf {
		contactOf[i] = -1
	}
	for i := 0; i < Letters; i++ {
		contactOf[Alphabet[i]] = int8(i)
	}
}

// Contact returns the contact index of an upper-case letter, or -1 if b is not one.
func Contact(b byte) int {
	return int(contactOf[b])
}

// Letter returns the letter wired to contact n.
func Letter(n int) byte {
	return Alphabet[n]
}

// ClassOf returns the class of a contact index.
func ClassOf(contact int) Class {
	if contact < SixesSize {
		return ClassSixes
	}
	return ClassTwenties
}

// Normalize folds ASCII lower case to upper case. It reports false for anything that
// is not an ASCII letter.
func Normalize(b byte) (byte, bool) {
	switch {
	case b >= 'A' && b <= 'Z':
		return b, true
	case b >= 'a' && b <= 'z':
		return b - ('a' - 'A'), true
	default:
		return b, false
	}
}
