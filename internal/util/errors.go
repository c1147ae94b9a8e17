package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrFeedUnavailable indicates every fetch attempt for a feed failed
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrFeedParse indicates a feed document could not be parsed
	ErrFeedParse = errors.New("feed parse error")

	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
