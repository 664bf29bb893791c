// Package optics provides the spatial grid, field and wavefront containers
// used by the atmospheric model, together with the free-space Fresnel
// propagator that couples phase screens at different altitudes.
package optics

import "math"

// Grid is a regular two-dimensional Cartesian sampling of a plane, centred on
// the origin. Samples are addressed by a row-major linear index: index i maps
// to column i%Nx and row i/Nx. The same type describes both spatial grids
// (pitch in meters) and spatial-frequency grids (pitch in rad/m).
type Grid struct {
	Nx, Ny int
	Dx, Dy float64
}

// NewGrid returns a square n-by-n grid with sample pitch d.
func NewGrid(n int, d float64) Grid {
	return Grid{Nx: n, Ny: n, Dx: d, Dy: d}
}

// NewFourierGrid returns the spatial-frequency grid conjugate to g under a
// discrete Fourier transform. Frequencies are angular (rad/m) with pitch
// 2*pi/(N*d) along each axis.
func NewFourierGrid(g Grid) Grid {
	return Grid{
		Nx: g.Nx,
		Ny: g.Ny,
		Dx: 2 * math.Pi / (float64(g.Nx) * g.Dx),
		Dy: 2 * math.Pi / (float64(g.Ny) * g.Dy),
	}
}

// Size returns the number of samples in the grid.
func (g Grid) Size() int { return g.Nx * g.Ny }

// X returns the x coordinate of sample i. The zero coordinate falls on an
// exact sample (column Nx/2) so that centred grids align with FFT ordering.
func (g Grid) X(i int) float64 {
	return float64(i%g.Nx-g.Nx/2) * g.Dx
}

// Y returns the y coordinate of sample i.
func (g Grid) Y(i int) float64 {
	return float64(i/g.Nx-g.Ny/2) * g.Dy
}

// R returns the polar radial coordinate of sample i.
func (g Grid) R(i int) float64 {
	return math.Hypot(g.X(i), g.Y(i))
}

// Equal reports whether two grids describe the same sampling.
func (g Grid) Equal(other Grid) bool {
	return g.Nx == other.Nx && g.Ny == other.Ny && g.Dx == other.Dx && g.Dy == other.Dy
}
