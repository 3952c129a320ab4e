// Package docs embeds the OpenAPI description of the users API.
package docs

import _ "embed"

// OpenAPI is the Swagger 2.0 document served at /openapi.json.
//
//go:embed openapi.json
var OpenAPI []byte
