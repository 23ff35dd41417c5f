// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Metric fallback constants
const (
	// JawAngleFallback is the jaw angle reported when ear, gonion or chin is
	// missing. It must not be 0, which reads as a square jaw.
	JawAngleFallback = 120.0

	// MissingEarY is the y coordinate assumed for a missing ear point, so
	// ear_position resolves to "low".
	MissingEarY = 1e9

	// MouthEyeSpanFactor scales the inner eye distance into the reference
	// width the mouth is compared against.
	MouthEyeSpanFactor = 1.5
)

// Evaluation constants
const (
	// FallbackTraitSuffix is appended to the category name for the synthetic
	// entry of a category without any matching rule.
	FallbackTraitSuffix = ": balanced/neutral"

	// TagNeutral and TagBalanced tag the synthetic fallback entry.
	TagNeutral  = "Neutral"
	TagBalanced = "Balanced"
)

// Processing constants
const (
	// WorkerPoolSize is the default number of parallel workers for batch analysis
	WorkerPoolSize = 8

	// DefaultOverlayMaxSize is the default maximum dimension (width or height)
	// of a rendered overlay image; 0 disables downscaling
	DefaultOverlayMaxSize = 1920
)
