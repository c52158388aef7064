// Package schemas embeds the JSON schemas used to validate epcstats files.
package schemas

import _ "embed"

// ConfigSchemaJSON is the schema for .epcstats.yaml project files.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
