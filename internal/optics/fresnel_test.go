package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gaussianBeam returns a wavefront with a Gaussian amplitude profile, which
// stays well away from the grid edges during short propagations.
func gaussianBeam(g Grid, wavelength, waist float64) *Wavefront {
	wf := NewWavefront(g, wavelength)
	for i := range wf.E {
		r := g.R(i)
		wf.E[i] = complex(math.Exp(-r*r/(waist*waist)), 0)
	}
	return wf
}

func TestFresnelZeroDistanceIsIdentity(t *testing.T) {
	g := NewGrid(32, 0.01)
	p := NewFresnelPropagator(g, 0)
	wf := gaussianBeam(g, 500e-9, 0.05)

	out, err := p.Forward(wf)
	require.NoError(t, err)
	for i := range wf.E {
		assert.Equal(t, wf.E[i], out.E[i])
	}
}

func TestFresnelConservesPower(t *testing.T) {
	// The transfer function has unit modulus, so total power is preserved
	// for any distance.
	g := NewGrid(32, 0.01)
	wf := gaussianBeam(g, 500e-9, 0.05)
	before := wf.Power()

	for _, dist := range []float64{100, 5000, 20000} {
		p := NewFresnelPropagator(g, dist)
		out, err := p.Forward(wf)
		require.NoError(t, err)
		assert.InEpsilon(t, before, out.Power(), 1e-10, "distance %g", dist)
	}
}

func TestFresnelBackwardUndoesForward(t *testing.T) {
	g := NewGrid(32, 0.01)
	p := NewFresnelPropagator(g, 1000)
	wf := gaussianBeam(g, 500e-9, 0.05)

	mid, err := p.Forward(wf)
	require.NoError(t, err)
	back, err := p.Backward(mid)
	require.NoError(t, err)

	for i := range wf.E {
		assert.InDelta(t, real(wf.E[i]), real(back.E[i]), 1e-10)
		assert.InDelta(t, imag(wf.E[i]), imag(back.E[i]), 1e-10)
	}
}

func TestFresnelDoesNotMutateInput(t *testing.T) {
	g := NewGrid(16, 0.01)
	p := NewFresnelPropagator(g, 2500)
	wf := gaussianBeam(g, 500e-9, 0.05)

	snapshot := make([]complex128, len(wf.E))
	copy(snapshot, wf.E)

	_, err := p.Forward(wf)
	require.NoError(t, err)
	assert.Equal(t, snapshot, wf.E)

	_, err = p.Backward(wf)
	require.NoError(t, err)
	assert.Equal(t, snapshot, wf.E)
}

func TestFresnelAccessors(t *testing.T) {
	g := NewGrid(16, 0.01)
	p := NewFresnelPropagator(g, 1234.5)
	assert.Equal(t, 1234.5, p.Distance())
	assert.True(t, g.Equal(p.OutputGrid()))
}
