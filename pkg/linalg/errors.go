package linalg

import (
	"cosmossdk.io/errors"
)

// Codespace is the error codespace shared by all linear algebra errors
const Codespace = "linalg"

var (
	// ErrDimensionMismatch is returned when operand shapes do not conform
	ErrDimensionMismatch = errors.Register(Codespace, 2, "dimension mismatch")

	// ErrRaggedMatrix is returned when matrix rows differ in length
	ErrRaggedMatrix = errors.Register(Codespace, 3, "ragged matrix rows")

	// ErrEmptyMatrix is returned for matrices with no rows or no columns
	ErrEmptyMatrix = errors.Register(Codespace, 4, "empty matrix")
)
