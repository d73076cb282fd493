package server

import (
	"time"

	"github.com/installd/switchboard/pkg/constants"
)

// Config holds event gateway configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// PathPrefix prepends all routes.
	PathPrefix string

	// HTTP timeouts
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:              "localhost",
		Port:              8686,
		PathPrefix:        "/v1",
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		IdleTimeout:       120 * time.Second,
	}
}
