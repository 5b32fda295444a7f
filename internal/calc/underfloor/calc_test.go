package underfloor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Frostline/internal/calcerr"
)

func TestUnderfloorSizing(t *testing.T) {
	res, err := Calculate(Input{AreaFt2: 10000, SupplyTempF: 70, ReturnTempF: 60})
	require.NoError(t, err)
	assert.InDelta(t, 80000.0, res.HeatBTUHr, 1e-9)
	assert.InDelta(t, 10000.0, res.LoopLengthFt, 1e-9)
	assert.InDelta(t, 80000.0/(425*10), res.GlycolGPM, 1e-9)
	assert.Empty(t, res.Flags)
}

func TestWideGlycolDropIsFlagged(t *testing.T) {
	res, err := Calculate(Input{AreaFt2: 5000, SupplyTempF: 90, ReturnTempF: 60})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Flags)
}

func TestInvertedGlycolLoopRejected(t *testing.T) {
	_, err := Calculate(Input{AreaFt2: 5000, SupplyTempF: 50, ReturnTempF: 60})
	assert.True(t, errors.Is(err, calcerr.ErrInvalidInput))
}
