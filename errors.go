package relprune

import "errors"

var (
	// ErrUnparseable is returned when a tag cannot be turned into a version,
	// even after shorthand repair.
	ErrUnparseable = errors.New("unparseable version")

	// ErrInvalidPolicy is returned by Policy.Validate and Evaluate for bad configuration.
	ErrInvalidPolicy = errors.New("invalid policy")
)
