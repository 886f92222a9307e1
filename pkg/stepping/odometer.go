// Package stepping decides how the switches move between letters.
package stepping

// Odometer is a mixed-radix counter over a set of wheels sharing one radix.
// Order lists wheel indices from the least to the most significant.
type Odometer struct {
	Radix int
	Order []int
}

// Advance adds one to the counter held in wheels. A wheel carries into the next one
// in Order when its value before this advance was Radix-1. It returns the number of
// wheels that moved (at least 1 when Order is not empty).
func (o Odometer) Advance(wheels []int) int {
	moved := 0
	for _, idx := range o.Order {
		before := wheels[idx]
		wheels[idx] = (before + 1) % o.Radix
		moved++
		if before != o.Radix-1 {
			break
		}
	}
	return moved
}
