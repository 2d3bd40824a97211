package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/cmdemo/pkg/linalg"
)

const tol = 1e-9

var (
	goldenPath1 = linalg.Vector{0.75, -0.25, 0.8, -0.2}
	goldenPath2 = linalg.Vector{0.25, 0.75, 0.8, -0.2}
)

const goldenText = `--- Cognitional Mechanics Operational Demo ---
Initial State (psi): [1 0.5 -0.2 0.8]

[Path 1] Apply A -> then B:
[0.75 -0.25 0.8 -0.2]

[Path 2] Apply B -> then A:
[0.25 0.75 0.8 -0.2]

--- Conclusion ---
Operational Divergence Detected: 1.1180
RESULT: The final state is determined by the ORDER of reasoning.
Non-commutative computation is successfully operationalized on classical CPU/GPU.
NO QUANTUM HARDWARE REQUIRED.
`

func TestComposeGoldenPaths(t *testing.T) {
	path1, path2, err := Compose(DefaultState(), OperatorA(), OperatorB())
	require.NoError(t, err)

	assert.True(t, path1.ApproxEqual(goldenPath1, tol), "path1 = %v", path1)
	assert.True(t, path2.ApproxEqual(goldenPath2, tol), "path2 = %v", path2)

	d, err := Divergence(path1, path2)
	require.NoError(t, err)
	assert.Greater(t, d, Epsilon)
	assert.InDelta(t, math.Sqrt(1.25), d, tol)
}

func TestRunDefault(t *testing.T) {
	res, err := NewRunner(nil).Run(context.Background(), DefaultParams())
	require.NoError(t, err)

	assert.True(t, res.Diverged)
	assert.Equal(t, Epsilon, res.Epsilon)
	assert.True(t, res.State.Equal(DefaultState()))

	var buf bytes.Buffer
	require.NoError(t, res.WriteText(&buf))
	assert.Equal(t, goldenText, buf.String())
}

func TestRunIdentityOperatorsDoNotDiverge(t *testing.T) {
	p := DefaultParams()
	p.A = linalg.Identity(4)
	p.B = linalg.Identity(4)

	res, err := NewRunner(nil).Run(context.Background(), p)
	require.ErrorIs(t, err, ErrNoDivergence)
	require.NotNil(t, res)

	assert.False(t, res.Diverged)
	assert.True(t, res.Path1.Equal(res.Path2))
	assert.Equal(t, 0.0, res.Distance)

	var buf bytes.Buffer
	require.NoError(t, res.WriteText(&buf))
	assert.Contains(t, buf.String(), "--- Conclusion ---\nError: No divergence detected. Check operator definitions.\n")
	assert.NotContains(t, buf.String(), "Operational Divergence Detected")
}

func TestRunIdentityForArbitraryVectors(t *testing.T) {
	for _, v := range []linalg.Vector{
		{0, 0, 0, 0},
		{-7.5, 3.25, 1e10, -1e-10},
		{math.Pi, math.E, math.Sqrt2, math.Phi},
	} {
		p1, p2, err := Compose(v, linalg.Identity(4), linalg.Identity(4))
		require.NoError(t, err)
		assert.True(t, p1.Equal(p2), "%v", v)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	runner := NewRunner(nil)

	render := func() string {
		res, err := runner.Run(context.Background(), DefaultParams())
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, res.Write(&buf, FormatJSON))
		return buf.String()
	}

	first := render()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, render())
	}
}

func TestRunDimensionMismatch(t *testing.T) {
	p := DefaultParams()
	p.State = linalg.NewVector(1, 2, 3)

	_, err := NewRunner(nil).Run(context.Background(), p)
	assert.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestRunValidation(t *testing.T) {
	runner := NewRunner(nil)

	p := DefaultParams()
	p.Epsilon = 0
	_, err := runner.Run(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p = DefaultParams()
	p.B = nil
	_, err = runner.Run(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p = DefaultParams()
	p.State = nil
	_, err = runner.Run(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil).Run(ctx, DefaultParams())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultStructuredFormats(t *testing.T) {
	res, err := NewRunner(nil).Run(context.Background(), DefaultParams())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.Write(&buf, FormatJSON))
	var fromJSON Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, *res, fromJSON)

	buf.Reset()
	require.NoError(t, res.Write(&buf, FormatYAML))
	var fromYAML map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, true, fromYAML["diverged"])
	assert.Len(t, fromYAML["path_1"], 4)

	assert.Error(t, res.Write(&buf, "xml"))
}

func overflowParams() Params {
	rows := OperatorARows()
	for i := range rows {
		for j := range rows[i] {
			rows[i][j] *= 1e300
		}
	}
	p := DefaultParams()
	p.A = linalg.MustMatrix(rows)
	p.State = linalg.NewVector(1e10, 1e10, 0, 0)
	return p
}

func TestRunOverflowRendersInEveryFormat(t *testing.T) {
	res, err := NewRunner(nil).Run(context.Background(), overflowParams())
	require.ErrorIs(t, err, ErrNoDivergence)
	require.NotNil(t, res)
	assert.True(t, math.IsInf(res.Path1[0], 1))
	assert.True(t, math.IsNaN(res.Distance))

	for _, format := range []string{FormatText, FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, res.Write(&buf, format), format)
		assert.NotEmpty(t, buf.String(), format)
	}

	var buf bytes.Buffer
	require.NoError(t, res.WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"distance": "NaN"`)

	var back Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.True(t, math.IsNaN(back.Distance))
	assert.True(t, math.IsInf(back.Path1[0], 1))
	assert.False(t, back.Diverged)
}
