package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Frostline/internal/calcerr"
)

func TestFixedPointConverges(t *testing.T) {
	x, iters, err := FixedPoint(math.Cos, 1.0, Config{})
	require.NoError(t, err)
	assert.InDelta(t, 0.739085, x, 1e-4)
	assert.Greater(t, iters, 0)
	assert.LessOrEqual(t, iters, DefaultMaxIter)
}

func TestFixedPointDeterministic(t *testing.T) {
	a, _, err1 := FixedPoint(math.Cos, 1.0, Config{})
	b, _, err2 := FixedPoint(math.Cos, 1.0, Config{})
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, a, b)
}

func TestFixedPointExhaustsBudget(t *testing.T) {
	_, iters, err := FixedPoint(func(x float64) float64 { return x + 1 }, 0, Config{MaxIter: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, calcerr.ErrNonConvergence))
	assert.Equal(t, 5, iters)

	var nc *calcerr.NonConvergenceError
	require.True(t, errors.As(err, &nc))
	assert.Equal(t, 5, nc.Iterations)
	assert.Equal(t, 5.0, nc.LastEstimate)
}

func TestFixedPointRejectsNaN(t *testing.T) {
	_, _, err := FixedPoint(func(x float64) float64 { return math.Sqrt(x - 10) }, 1, Config{})
	assert.True(t, errors.Is(err, calcerr.ErrNonConvergence))
}
