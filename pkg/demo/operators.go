package demo

import (
	"github.com/oxygene76/cmdemo/pkg/linalg"
)

// Epsilon is the distance above which the two paths are considered divergent
const Epsilon = 1e-9

// DefaultState returns the initial semantic state psi
func DefaultState() linalg.Vector {
	return linalg.NewVector(1.0, 0.5, -0.2, 0.8)
}

// OperatorARows returns operator A, a permutation that swaps
// components 0<->1 and 2<->3 (shifts perspective).
func OperatorARows() [][]float64 {
	return [][]float64{
		{0, 1, 0, 0},
		{1, 0, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
}

// OperatorBRows returns operator B, a Hadamard-like block on the first two
// components and identity on the rest (changes focal weights).
func OperatorBRows() [][]float64 {
	return [][]float64{
		{0.5, 0.5, 0, 0},
		{0.5, -0.5, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// OperatorA returns operator A as a matrix
func OperatorA() *linalg.Matrix {
	return linalg.MustMatrix(OperatorARows())
}

// OperatorB returns operator B as a matrix
func OperatorB() *linalg.Matrix {
	return linalg.MustMatrix(OperatorBRows())
}
