// Package constants provides shared constants used throughout the switchboard codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the
	// management service
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// ServerReadHeaderTimeout is the header read timeout for the event gateway
	ServerReadHeaderTimeout = 15 * time.Second

	// ServerShutdownTimeout is how long the event gateway waits for in-flight
	// requests during shutdown
	ServerShutdownTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// DefaultEventBufferSize is the per-subscription ring buffer capacity of
	// the broadcast hub
	DefaultEventBufferSize = 64

	// MaxBodySnippet is the maximum number of response-body bytes retained
	// on protocol and decode errors for diagnostics
	MaxBodySnippet = 512
)
