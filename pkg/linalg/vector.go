package linalg

import (
	"strconv"
	"strings"

	"cosmossdk.io/errors"
	"gonum.org/v1/gonum/floats"
)

// Vector is an ordered sequence of float64 components.
// Operations never modify the receiver; they return a new vector.
type Vector []float64

// NewVector returns a vector holding a copy of values
func NewVector(values ...float64) Vector {
	v := make(Vector, len(values))
	copy(v, values)
	return v
}

// Len returns the number of components
func (v Vector) Len() int {
	return len(v)
}

// Clone returns an independent copy of the vector
func (v Vector) Clone() Vector {
	return NewVector(v...)
}

// Add returns the component-wise sum of two vectors
func (v Vector) Add(other Vector) (Vector, error) {
	if err := sameLength("add", v, other); err != nil {
		return nil, err
	}
	out := make(Vector, len(v))
	floats.AddTo(out, v, other)
	return out, nil
}

// Sub returns the component-wise difference v - other
func (v Vector) Sub(other Vector) (Vector, error) {
	if err := sameLength("sub", v, other); err != nil {
		return nil, err
	}
	out := make(Vector, len(v))
	floats.SubTo(out, v, other)
	return out, nil
}

// Scale returns the vector scaled by a scalar
func (v Vector) Scale(s float64) Vector {
	out := make(Vector, len(v))
	floats.ScaleTo(out, s, v)
	return out
}

// Dot returns the dot product of two vectors
func (v Vector) Dot(other Vector) (float64, error) {
	if err := sameLength("dot", v, other); err != nil {
		return 0, err
	}
	return floats.Dot(v, other), nil
}

// Norm returns the Euclidean length of the vector
func (v Vector) Norm() float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

// Distance returns the Euclidean norm of v - other
func (v Vector) Distance(other Vector) (float64, error) {
	if err := sameLength("distance", v, other); err != nil {
		return 0, err
	}
	if len(v) == 0 {
		return 0, nil
	}
	return floats.Distance(v, other, 2), nil
}

// Equal reports whether both vectors have identical components
func (v Vector) Equal(other Vector) bool {
	return floats.Equal(v, other)
}

// ApproxEqual reports whether every component differs by at most tol
func (v Vector) ApproxEqual(other Vector, tol float64) bool {
	return floats.EqualApprox(v, other, tol)
}

// String formats the vector as a bracketed, space separated list
func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

func sameLength(op string, a, b Vector) error {
	if len(a) != len(b) {
		return errors.Wrapf(ErrDimensionMismatch, "%s: vector lengths %d and %d", op, len(a), len(b))
	}
	return nil
}
