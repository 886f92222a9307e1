/*
Package ports defines the driven ports (interfaces) of the cipher machine services.

The machine itself needs nothing from the outside world; the ports exist for the
surfaces around it (CLI, HTTP, MCP) that keep named key sheets.

# Key Interfaces

  - KeyStore: persists and retrieves key sheets by name (memory, file, Redis).

RunKeyStoreContract verifies that an implementation honours the interface.
*/
package ports
