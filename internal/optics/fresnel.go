package optics

import (
	"math"
	"math/cmplx"
)

// FresnelPropagator propagates a wavefront over a fixed distance of free
// space using the paraxial transfer-function method: the field is Fourier
// transformed, multiplied by the Fresnel kernel
//
//	H(kx, ky) = exp(i k z) * exp(-i z (kx^2 + ky^2) / (2 k))
//
// and transformed back. The kernel depends on the wavefront's wavelength, so
// it is computed per call; the FFT plan is reused.
type FresnelPropagator struct {
	grid     Grid
	distance float64
	fft      *FFT2
}

// NewFresnelPropagator returns a propagator over the given distance in
// meters. A negative distance propagates backwards.
func NewFresnelPropagator(grid Grid, distance float64) *FresnelPropagator {
	return &FresnelPropagator{
		grid:     grid,
		distance: distance,
		fft:      NewFFT2(grid.Nx, grid.Ny),
	}
}

// Distance returns the propagation distance in meters.
func (p *FresnelPropagator) Distance() float64 { return p.distance }

// OutputGrid returns the grid of the propagated wavefront, which equals the
// input grid.
func (p *FresnelPropagator) OutputGrid() Grid { return p.grid }

// Forward propagates a copy of wf over the propagator's distance.
func (p *FresnelPropagator) Forward(wf *Wavefront) (*Wavefront, error) {
	return p.propagate(wf, p.distance)
}

// Backward propagates a copy of wf over the negated distance, undoing a
// Forward propagation.
func (p *FresnelPropagator) Backward(wf *Wavefront) (*Wavefront, error) {
	return p.propagate(wf, -p.distance)
}

func (p *FresnelPropagator) propagate(wf *Wavefront, z float64) (*Wavefront, error) {
	out := wf.Copy()
	if z == 0 {
		return out, nil
	}

	k := wf.Wavenumber()
	nx, ny := p.grid.Nx, p.grid.Ny
	dkx := 2 * math.Pi / (float64(nx) * p.grid.Dx)
	dky := 2 * math.Pi / (float64(ny) * p.grid.Dy)

	p.fft.Forward(out.E)
	piston := complex(0, k*z)
	for iy := 0; iy < ny; iy++ {
		ky := float64(FFTFreq(iy, ny)) * dky
		for ix := 0; ix < nx; ix++ {
			kx := float64(FFTFreq(ix, nx)) * dkx
			h := cmplx.Exp(piston + complex(0, -z*(kx*kx+ky*ky)/(2*k)))
			out.E[iy*nx+ix] *= h
		}
	}
	p.fft.Inverse(out.E)

	norm := complex(1/float64(nx*ny), 0)
	for i := range out.E {
		out.E[i] *= norm
	}
	return out, nil
}
