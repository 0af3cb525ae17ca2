package config

import "ticketcsv/internal/backend"

// LoadBackendConfig delegates to the backend connector loader while
// centralizing loader entrypoints under internal/config.
func LoadBackendConfig(path string) (backend.Config, error) {
	return backend.LoadConfig(path)
}
