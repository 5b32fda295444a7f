package purge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Frostline/internal/calcerr"
	"Frostline/internal/props"
)

func TestPurgeVolumes(t *testing.T) {
	cat, err := props.Default()
	require.NoError(t, err)

	res, err := Calculate(Input{Nominal: "2", LengthFt: 100, PurgeFlowCFM: 10}, cat)
	require.NoError(t, err)
	assert.InDelta(t, 2.33, res.InternalFt3, 0.01)
	assert.InEpsilon(t, 3*res.InternalFt3, res.NitrogenFt3, 1e-12)
	assert.InEpsilon(t, res.NitrogenFt3/10, res.MinutesAtFlow, 1e-12)
}

func TestPurgeRejectsZeroLength(t *testing.T) {
	cat, err := props.Default()
	require.NoError(t, err)
	_, err = Calculate(Input{Nominal: "2"}, cat)
	assert.True(t, errors.Is(err, calcerr.ErrInvalidInput))
}
