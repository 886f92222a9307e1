// Package api embeds the HTTP contract of the typeb server.
package api

import _ "embed"

// Spec is the OpenAPI 3 document served at GET /openapi.yaml and enforced on request
// bodies by the HTTP adapter.
//
//go:embed openapi.yaml
var Spec []byte
