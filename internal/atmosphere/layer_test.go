package atmosphere

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywatch-data/seeing.report/internal/optics"
)

func newTestBase() *LayerBase {
	b := NewLayerBase(optics.NewGrid(4, 0.5), 1e-13, 20, [2]float64{5, 0}, 8000)
	return &b
}

func TestLayerBaseAbstractOperations(t *testing.T) {
	b := newTestBase()

	assert.ErrorIs(t, b.EvolveUntil(1), ErrNotImplemented)
	assert.ErrorIs(t, b.SetTime(1), ErrNotImplemented)
	assert.ErrorIs(t, b.Reset(), ErrNotImplemented)
	assert.ErrorIs(t, b.SetCnSquared(1e-13), ErrNotImplemented)
	assert.ErrorIs(t, b.SetOuterScale(10), ErrNotImplemented)

	_, err := b.PhaseFor(500e-9)
	assert.ErrorIs(t, err, ErrNotImplemented)

	// Forward and Backward depend on PhaseFor, so they surface the same
	// error on the base type.
	wf := optics.NewWavefront(b.InputGrid(), 500e-9)
	_, err = b.Forward(wf)
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = b.Backward(wf)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestLayerBaseState(t *testing.T) {
	b := newTestBase()

	assert.Equal(t, 1e-13, b.CnSquared())
	assert.Equal(t, 20.0, b.OuterScale())
	assert.Equal(t, 20.0, b.L0(), "L0 and OuterScale are the same attribute")
	assert.Equal(t, 8000.0, b.Height())
	assert.Equal(t, 0.0, b.Time())
	assert.True(t, b.InputGrid().Equal(b.OutputGrid()), "phase screens do not resample")
}

func TestLayerVelocityNormalization(t *testing.T) {
	b := newTestBase()
	require.Equal(t, [2]float64{5, 0}, b.Velocity())

	b.SetVelocity([2]float64{3, -4})
	assert.Equal(t, [2]float64{3, -4}, b.Velocity())

	// A scalar wind speed is directed along the first axis.
	b.SetWindSpeed(12)
	assert.Equal(t, [2]float64{12, 0}, b.Velocity())
}
