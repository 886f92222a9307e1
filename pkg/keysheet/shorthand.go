// Package keysheet reads machine settings in the notations used by the people who
// operated and attacked the machine: the switch shorthand ("9-1,24,6-23") and
// YAML key-sheet documents.
package keysheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/typeb/pkg/domain"
)

// Parse reads the shorthand 'a-b,c,d-ef':
//
//	a      starting position of the sixes switch (1-25)
//	b,c,d  starting positions of twenties switches #1, #2, #3 (1-25)
//	e      the twenties switch acting as the fast switch (1-3)
//	f      the twenties switch acting as the medium switch (1-3)
//
// Positions are 1-based in the notation and 0-based in the result. The slow switch is
// whichever one e and f leave over.
func Parse(s string) (domain.Positions, domain.Speeds, error) {
	var pos domain.Positions
	var speeds domain.Speeds

	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return pos, speeds, fmt.Errorf("%w: %q must look like 9-1,24,6-23", domain.ErrInvalidKeySheet, s)
	}

	twenties := strings.Split(parts[1], ",")
	if len(twenties) != 3 {
		return pos, speeds, fmt.Errorf("%w: %q needs three twenties positions", domain.ErrInvalidKeySheet, s)
	}

	values := make([]int, 0, 4)
	for _, field := range append([]string{parts[0]}, twenties...) {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return pos, speeds, fmt.Errorf("%w: switch position %q is not a number", domain.ErrInvalidKeySheet, field)
		}
		values = append(values, n-1)
	}
	pos.Sixes = values[0]
	copy(pos.Twenties[:], values[1:])
	if err := pos.Validate(); err != nil {
		return pos, speeds, fmt.Errorf("%w: %w", domain.ErrInvalidKeySheet, err)
	}

	speed := strings.TrimSpace(parts[2])
	if len(speed) != 2 || speed[0] < '0' || speed[0] > '9' || speed[1] < '0' || speed[1] > '9' {
		return pos, speeds, fmt.Errorf("%w: speed setting %q must be two digits", domain.ErrInvalidKeySheet, speed)
	}
	speeds.Fast = int(speed[0] - '0')
	speeds.Medium = int(speed[1] - '0')
	speeds.Slow = 6 - speeds.Fast - speeds.Medium
	if err := speeds.Validate(); err != nil {
		return pos, speeds, fmt.Errorf("%w: %w", domain.ErrInvalidKeySheet, err)
	}

	return pos, speeds, nil
}

// Format writes positions and speeds back in shorthand.
func Format(pos domain.Positions, speeds domain.Speeds) string {
	return fmt.Sprintf("%d-%d,%d,%d-%d%d",
		pos.Sixes+1,
		pos.Twenties[0]+1, pos.Twenties[1]+1, pos.Twenties[2]+1,
		speeds.Fast, speeds.Medium,
	)
}
