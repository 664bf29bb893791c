package atmosphere

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/skywatch-data/seeing.report/internal/optics"
)

// SpectralLayer is a Layer whose phase screen is synthesized from the von
// Karman power spectral density: every Fourier mode gets a complex Gaussian
// coefficient weighted by the square root of the PSD, and an inverse FFT
// yields a periodic screen with the right spatial statistics.
//
// The screen is stored at the reference wavelength and evolves by frozen
// flow: advancing time translates it by velocity*dt, applied exactly in the
// Fourier domain, so subpixel shifts and periodic wrap-around are free.
type SpectralLayer struct {
	LayerBase

	normal  distuv.Normal
	fft     *optics.FFT2
	noise   []complex128 // unit Gaussian draws per mode, FFT order
	sqrtPSD []float64    // mode amplitudes for the current r0 and L0
	scratch []complex128
	screen  optics.Field // phase in radians at ReferenceWavelength
	disp    [2]float64   // accumulated frozen-flow displacement
}

// NewSpectralLayer returns a layer over grid with integrated strength
// cnSquared, outer scale outerScale (meters, may be +Inf), wind velocity in
// m/s and altitude height in meters. The seed makes the realization
// reproducible. The first screen is drawn immediately.
func NewSpectralLayer(grid optics.Grid, cnSquared, outerScale float64, velocity [2]float64, height float64, seed uint64) *SpectralLayer {
	s := &SpectralLayer{
		LayerBase: NewLayerBase(grid, cnSquared, outerScale, velocity, height),
		normal: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
		},
		fft:     optics.NewFFT2(grid.Nx, grid.Ny),
		noise:   make([]complex128, grid.Size()),
		sqrtPSD: make([]float64, grid.Size()),
		scratch: make([]complex128, grid.Size()),
		screen:  optics.NewField(grid),
	}
	s.computeSqrtPSD()
	if err := s.Reset(); err != nil {
		panic(err) // Reset on a fully constructed layer cannot fail
	}
	return s
}

// computeSqrtPSD refreshes the per-mode amplitudes from the layer's current
// strength and outer scale. Mode k contributes amplitude
// sqrt(PSD(kappa_k) dkx dky) / (2 pi), with the PSD evaluated at the
// reference wavelength.
func (s *SpectralLayer) computeSqrtPSD() {
	grid := s.InputGrid()
	fourierGrid := optics.NewFourierGrid(grid)
	r0 := FriedParameterFromCnSquared(s.CnSquared(), ReferenceWavelength)
	psd := PowerSpectralDensityVonKarman(r0, s.OuterScale())(fourierGrid)

	norm := math.Sqrt(fourierGrid.Dx*fourierGrid.Dy) / (2 * math.Pi)
	nx, ny := grid.Nx, grid.Ny
	for iy := 0; iy < ny; iy++ {
		cy := (iy + ny/2) % ny // FFT order to centred order
		for ix := 0; ix < nx; ix++ {
			cx := (ix + nx/2) % nx
			s.sqrtPSD[iy*nx+ix] = math.Sqrt(psd.Data[cy*nx+cx]) * norm
		}
	}
}

// rebuild synthesizes the screen from the retained noise draws, the current
// mode amplitudes and the accumulated frozen-flow displacement.
func (s *SpectralLayer) rebuild() {
	grid := s.InputGrid()
	nx, ny := grid.Nx, grid.Ny
	dkx := 2 * math.Pi / (float64(nx) * grid.Dx)
	dky := 2 * math.Pi / (float64(ny) * grid.Dy)

	for iy := 0; iy < ny; iy++ {
		ky := float64(optics.FFTFreq(iy, ny)) * dky
		for ix := 0; ix < nx; ix++ {
			kx := float64(optics.FFTFreq(ix, nx)) * dkx
			i := iy*nx + ix
			shift := cmplx.Exp(complex(0, -(kx*s.disp[0] + ky*s.disp[1])))
			s.scratch[i] = s.noise[i] * complex(s.sqrtPSD[i], 0) * shift
		}
	}
	s.fft.Inverse(s.scratch)
	for i := range s.screen.Data {
		s.screen.Data[i] = real(s.scratch[i])
	}
}

// Reset draws a fresh uncorrelated realization of the screen. The layer's
// time is unchanged; the frozen-flow displacement restarts from zero.
func (s *SpectralLayer) Reset() error {
	for i := range s.noise {
		s.noise[i] = complex(s.normal.Rand(), s.normal.Rand())
	}
	s.disp = [2]float64{}
	s.rebuild()
	return nil
}

// EvolveUntil advances the screen to time t by frozen flow with the current
// velocity.
func (s *SpectralLayer) EvolveUntil(t float64) error {
	dt := t - s.Time()
	v := s.Velocity()
	s.disp[0] += v[0] * dt
	s.disp[1] += v[1] * dt
	s.storeTime(t)
	s.rebuild()
	return nil
}

// SetTime is equivalent to EvolveUntil.
func (s *SpectralLayer) SetTime(t float64) error { return s.EvolveUntil(t) }

// PhaseFor returns the phase screen in radians at the given wavelength,
// scaling the stored reference screen by ReferenceWavelength/wavelength.
func (s *SpectralLayer) PhaseFor(wavelength float64) (optics.Field, error) {
	out := s.screen.Copy()
	if wavelength != ReferenceWavelength {
		out.Scale(ReferenceWavelength / wavelength)
	}
	return out, nil
}

// SetCnSquared rescales the screen to the new integrated strength. The
// stored noise draws are retained, so only the amplitude changes.
func (s *SpectralLayer) SetCnSquared(v float64) error {
	s.storeCnSquared(v)
	s.computeSqrtPSD()
	s.rebuild()
	return nil
}

// SetOuterScale resynthesizes the screen with a new outer scale, retaining
// the stored noise draws.
func (s *SpectralLayer) SetOuterScale(v float64) error {
	s.storeOuterScale(v)
	s.computeSqrtPSD()
	s.rebuild()
	return nil
}

// SetL0 is an alias for SetOuterScale.
func (s *SpectralLayer) SetL0(v float64) error { return s.SetOuterScale(v) }

// Forward returns a copy of wf with exp(+i*phase) applied.
func (s *SpectralLayer) Forward(wf *optics.Wavefront) (*optics.Wavefront, error) {
	return forwardThrough(s, wf)
}

// Backward returns a copy of wf with exp(-i*phase) applied.
func (s *SpectralLayer) Backward(wf *optics.Wavefront) (*optics.Wavefront, error) {
	return backwardThrough(s, wf)
}
