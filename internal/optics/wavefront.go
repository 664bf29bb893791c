package optics

import (
	"math"
	"math/cmplx"
)

// Wavefront is a monochromatic complex electric field sampled on a grid.
type Wavefront struct {
	Grid       Grid
	Wavelength float64
	E          []complex128
}

// NewWavefront returns a flat (unit amplitude, zero phase) wavefront over g.
func NewWavefront(g Grid, wavelength float64) *Wavefront {
	wf := &Wavefront{Grid: g, Wavelength: wavelength, E: make([]complex128, g.Size())}
	for i := range wf.E {
		wf.E[i] = 1
	}
	return wf
}

// Copy returns a deep copy of the wavefront. Optical elements operate on
// copies so that a caller's wavefront is never mutated.
func (wf *Wavefront) Copy() *Wavefront {
	out := &Wavefront{Grid: wf.Grid, Wavelength: wf.Wavelength, E: make([]complex128, len(wf.E))}
	copy(out.E, wf.E)
	return out
}

// Wavenumber returns 2*pi/wavelength.
func (wf *Wavefront) Wavenumber() float64 {
	return 2 * math.Pi / wf.Wavelength
}

// Power returns the total power in the wavefront, the sum of |E|^2 over all
// samples.
func (wf *Wavefront) Power() float64 {
	var sum float64
	for _, e := range wf.E {
		sum += real(e)*real(e) + imag(e)*imag(e)
	}
	return sum
}

// Phase returns the wrapped phase of the electric field as a field over the
// wavefront's grid.
func (wf *Wavefront) Phase() Field {
	out := NewField(wf.Grid)
	for i, e := range wf.E {
		out.Data[i] = cmplx.Phase(e)
	}
	return out
}
