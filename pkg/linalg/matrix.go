package linalg

import (
	"strings"

	"cosmossdk.io/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix is an immutable row-major matrix. Element (i, j) is the
// coefficient applied to input component j for output component i.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix builds a matrix from its rows. The input is copied.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMatrix
	}

	cols := len(rows[0])
	m := &Matrix{
		rows: len(rows),
		cols: cols,
		data: make([]float64, 0, len(rows)*cols),
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrRaggedMatrix, "row %d has %d columns, expected %d", i, len(row), cols)
		}
		m.data = append(m.data, row...)
	}
	return m, nil
}

// MustMatrix is like NewMatrix but panics on malformed literals
func MustMatrix(rows [][]float64) *Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Identity returns the n x n identity matrix. For n <= 0 the result is an
// empty matrix that every operation rejects with ErrEmptyMatrix.
func Identity(n int) *Matrix {
	if n < 0 {
		n = 0
	}
	m := &Matrix{rows: n, cols: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the number of rows
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row r, column c
func (m *Matrix) At(r, c int) float64 {
	return m.data[r*m.cols+c]
}

// RowSlices returns a copy of the matrix as a slice of rows
func (m *Matrix) RowSlices() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		copy(out[i], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// MulVec returns r where r[i] = sum_j M[i][j] * v[j].
// The vector length must equal the column count.
func (m *Matrix) MulVec(v Vector) (Vector, error) {
	if m.empty() {
		return nil, ErrEmptyMatrix
	}
	if len(v) != m.cols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%dx%d matrix applied to vector of length %d", m.rows, m.cols, len(v))
	}

	out := make(Vector, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		var sum float64
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Mul returns the matrix product m * other
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.empty() || other.empty() {
		return nil, ErrEmptyMatrix
	}
	if m.cols != other.rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "cannot multiply %dx%d by %dx%d", m.rows, m.cols, other.rows, other.cols)
	}

	var prod mat.Dense
	prod.Mul(m.dense(), other.dense())
	return fromDense(&prod), nil
}

// Commutator returns AB - BA. Both operators must be square and of the same order.
func Commutator(a, b *Matrix) (*Matrix, error) {
	if a.empty() || b.empty() {
		return nil, ErrEmptyMatrix
	}
	if a.rows != a.cols || b.rows != b.cols || a.rows != b.rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "commutator of %dx%d and %dx%d", a.rows, a.cols, b.rows, b.cols)
	}

	var ab, ba, diff mat.Dense
	ab.Mul(a.dense(), b.dense())
	ba.Mul(b.dense(), a.dense())
	diff.Sub(&ab, &ba)
	return fromDense(&diff), nil
}

// FrobeniusNorm returns the square root of the sum of squared elements
func (m *Matrix) FrobeniusNorm() float64 {
	if m.empty() {
		return 0
	}
	return mat.Norm(m.dense(), 2)
}

// String renders one bracketed row per line
func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Vector(m.data[i*m.cols : (i+1)*m.cols]).String())
	}
	return b.String()
}

func (m *Matrix) empty() bool {
	return m == nil || m.rows == 0 || m.cols == 0
}

func (m *Matrix) dense() *mat.Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return mat.NewDense(m.rows, m.cols, data)
}

func fromDense(d *mat.Dense) *Matrix {
	r, c := d.Dims()
	return &Matrix{rows: r, cols: c, data: mat.DenseCopyOf(d).RawMatrix().Data}
}
