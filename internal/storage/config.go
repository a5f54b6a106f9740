package storage

import "github.com/apiarycd/memberships/pkg/badgerfx"

const DefaultJSONPath = "data.json"

type Config struct {
	// Backend name, case-insensitive. Empty selects the JSON file backend.
	Driver string
	// Location of the JSON document
	JSONPath string
	// Badger backend options
	Badger badgerfx.Config
	// Connection string of the postgres backend, optional
	PostgresDSN string
}
