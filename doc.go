/*
Package typeb emulates the Type B ("Purple") stepping-switch cipher machine.

A Machine routes each letter through a plugboard, then through one of two independent
switch networks chosen by the letter's contact: the sixes (the first six contacts) or
the twenties (the remaining twenty, chained through three banks). After every letter
the switches advance under the control of the stepping rule, so the substitution
changes letter by letter. Decryption runs the same network in the reverse direction
from the same starting settings.

# Settings

A machine is keyed by four things:

  - Positions: the starting position (0-24) of the sixes switch and of each twenties switch.
  - Speeds: which twenties switch is fast, medium and slow.
  - Plugboard: a 26-letter permutation; letter i is the keyboard letter wired to contact i.
  - Mode: "cascade" (odometer stepping, the default) or "typeb" (the historical rule).

Key sheets use the shorthand "S-F,M,S-xy", e.g. "9-1,24,6-23": sixes at 9, twenties
at 1, 24 and 6 (all 1-based), switch #2 fast and #3 medium.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/typeb"
		"github.com/aretw0/typeb/pkg/domain"
	)

	func main() {
		m, err := typeb.FromKeySheet("9-1,24,6-23", "NOKTYUXEQLHBRMPDICJASVWGZF",
			typeb.WithMode(domain.ModeTypeB))
		if err != nil {
			log.Fatal(err)
		}

		out, err := m.Decrypt("ZTXODNWKCCMAVNZXYWEE")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out) // FOVTATAKIDASINIMUIMI
	}

A Machine carries state; build a fresh one (same options) for each message.
*/
package typeb
