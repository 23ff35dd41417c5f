// Package constants provides shared constants used across the codebase.
package constants

// Web server constants
const (
	// DefaultWebPort is the port the HTTP API listens on when none is configured
	DefaultWebPort = 6677

	// DefaultWebHost is the interface the HTTP API binds to by default
	DefaultWebHost = "127.0.0.1"

	// MaxUploadSize is the maximum image upload size in bytes (20MB)
	MaxUploadSize = 20 << 20

	// MaxLandmarkBodySize caps JSON landmark payloads in bytes (1MB)
	MaxLandmarkBodySize = 1 << 20
)

// Interpretation constants
const (
	// InterpretMaxRetries is the number of attempts made to get parseable JSON
	// out of a language model before falling back to the fixed interpretation
	InterpretMaxRetries = 3
)
