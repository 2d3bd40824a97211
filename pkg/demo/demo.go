package demo

import (
	"context"
	"fmt"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/oxygene76/cmdemo/internal/logging"
	"github.com/oxygene76/cmdemo/pkg/linalg"
)

// Params holds the inputs of one demonstration run
type Params struct {
	State   linalg.Vector
	A       *linalg.Matrix
	B       *linalg.Matrix
	Epsilon float64
}

// DefaultParams returns the fixed literal inputs
func DefaultParams() Params {
	return Params{
		State:   DefaultState(),
		A:       OperatorA(),
		B:       OperatorB(),
		Epsilon: Epsilon,
	}
}

// Runner executes the non-commutativity demonstration
type Runner struct {
	logger log.Logger
}

// NewRunner creates a new runner. A nil logger disables logging.
func NewRunner(logger log.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		logger: logger.With("module", "demo"),
	}
}

// Compose applies the operators in both orders:
// path1 = B x (A x v) and path2 = A x (B x v).
func Compose(v linalg.Vector, a, b *linalg.Matrix) (path1, path2 linalg.Vector, err error) {
	av, err := a.MulVec(v)
	if err != nil {
		return nil, nil, errors.Wrap(err, "apply A")
	}
	path1, err = b.MulVec(av)
	if err != nil {
		return nil, nil, errors.Wrap(err, "apply B after A")
	}

	bv, err := b.MulVec(v)
	if err != nil {
		return nil, nil, errors.Wrap(err, "apply B")
	}
	path2, err = a.MulVec(bv)
	if err != nil {
		return nil, nil, errors.Wrap(err, "apply A after B")
	}

	return path1, path2, nil
}

// Divergence returns the Euclidean distance between the two paths
func Divergence(p1, p2 linalg.Vector) (float64, error) {
	return p1.Distance(p2)
}

// Run performs the demonstration. When the paths do not diverge the
// result is returned together with ErrNoDivergence.
func (r *Runner) Run(ctx context.Context, p Params) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	r.logger.Debug("composing operators",
		"state", p.State.String(),
		"rows_a", p.A.Rows(), "cols_a", p.A.Cols(),
		"rows_b", p.B.Rows(), "cols_b", p.B.Cols())

	path1, path2, err := Compose(p.State, p.A, p.B)
	if err != nil {
		return nil, fmt.Errorf("composition failed: %w", err)
	}
	r.logger.Debug("path 1 (A then B)", "result", path1.String())
	r.logger.Debug("path 2 (B then A)", "result", path2.String())

	distance, err := Divergence(path1, path2)
	if err != nil {
		return nil, fmt.Errorf("divergence failed: %w", err)
	}

	result := &Result{
		State:    p.State.Clone(),
		Path1:    path1,
		Path2:    path2,
		Distance: distance,
		Epsilon:  p.Epsilon,
		Diverged: distance > p.Epsilon,
	}

	if !result.Diverged {
		r.logger.Error("paths did not diverge", "distance", distance, "epsilon", p.Epsilon)
		return result, errors.Wrapf(ErrNoDivergence, "distance %g <= epsilon %g", distance, p.Epsilon)
	}

	r.logger.Debug("operational divergence detected", "distance", distance)
	return result, nil
}

// Validate checks that the parameters are complete
func (p Params) Validate() error {
	if p.State.Len() == 0 {
		return errors.Wrap(ErrInvalidConfig, "state vector is empty")
	}
	if p.A == nil || p.B == nil {
		return errors.Wrap(ErrInvalidConfig, "both operators must be set")
	}
	if !(p.Epsilon > 0) {
		return errors.Wrapf(ErrInvalidConfig, "epsilon must be positive, got %g", p.Epsilon)
	}
	return nil
}
