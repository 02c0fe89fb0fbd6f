package main

import (
	"fmt"

	"github.com/phrazzld/tally-api/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables and an optional config file.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
