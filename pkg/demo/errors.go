package demo

import (
	"cosmossdk.io/errors"
)

// Codespace is the error codespace of the demonstration
const Codespace = "demo"

var (
	// ErrNoDivergence means both application orders produced the same state.
	// With non-commuting operators this points at misconfigured inputs.
	ErrNoDivergence = errors.Register(Codespace, 2, "no divergence detected")

	// ErrInvalidConfig is returned when demonstration inputs fail validation
	ErrInvalidConfig = errors.Register(Codespace, 3, "invalid configuration")
)
