/*
Package domain contains the core vocabulary of the Type B machine.

It is kept free of I/O so every other package (engine, adapters, CLI) can share it.

# Key Entities

  - Alphabet / Class: the 26 contacts in wiring order and their split into sixes and twenties.
  - Positions / Speeds: the switch state and the fast/medium/slow assignment.
  - Settings: everything needed to key one machine, plus the non-letter Policy and stepping Mode.
  - LifecycleHooks: per-letter and per-message callbacks for observability.
  - Errors: sentinel errors for invalid settings and rejected characters.
*/
package domain
