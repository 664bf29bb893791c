package atmosphere

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywatch-data/seeing.report/internal/optics"
)

func TestFriedParameterCnSquaredRoundTrip(t *testing.T) {
	for _, r0 := range []float64{0.05, 0.1, 0.2, 0.5} {
		for _, wavelength := range []float64{500e-9, 1.65e-6} {
			cn2 := CnSquaredFromFriedParameter(r0, wavelength)
			assert.Positive(t, cn2)
			back := FriedParameterFromCnSquared(cn2, wavelength)
			assert.InEpsilon(t, r0, back, 1e-12, "r0=%g lambda=%g", r0, wavelength)
		}
	}
}

func TestSeeingFriedParameterRoundTrip(t *testing.T) {
	for _, seeing := range []float64{0.5, 1.0, 2.5} {
		r0 := SeeingToFriedParameter(seeing, ReferenceWavelength)
		back := FriedParameterToSeeing(r0, ReferenceWavelength)
		assert.InEpsilon(t, seeing, back, 1e-12, "seeing=%g", seeing)
	}

	// One arcsecond seeing at 500 nm corresponds to roughly a 10 cm Fried
	// parameter.
	r0 := SeeingToFriedParameter(1.0, ReferenceWavelength)
	assert.InDelta(t, 0.101, r0, 0.001)
}

func TestPowerSpectralDensityDCIsZero(t *testing.T) {
	grid := optics.NewGrid(8, 0.5)
	origin := (grid.Ny/2)*grid.Nx + grid.Nx/2

	for _, r0 := range []float64{0.05, 0.2} {
		for _, L0 := range []float64{10, 100, math.Inf(1)} {
			psd := PowerSpectralDensityVonKarman(r0, L0)(grid)
			assert.Zero(t, psd.Data[origin], "r0=%g L0=%g", r0, L0)

			// Every other sample is strictly positive.
			for i, v := range psd.Data {
				if i == origin {
					continue
				}
				assert.Positive(t, v, "r0=%g L0=%g i=%d", r0, L0, i)
			}
		}
	}
}

func TestStructureFunctionEqualsTwiceCovarianceDeficit(t *testing.T) {
	// D(r) = 2*(B(0) - B(r)) ties the two von Karman expressions together.
	const r0, L0 = 0.15, 25.0
	grid := optics.NewGrid(16, 0.05)
	origin := (grid.Ny/2)*grid.Nx + grid.Nx/2

	cov := PhaseCovarianceVonKarman(r0, L0)(grid)
	structure := PhaseStructureFunctionVonKarman(r0, L0)(grid)
	cov0 := cov.Data[origin] // r is epsilon there, effectively B(0)

	for i := range structure.Data {
		want := 2 * (cov0 - cov.Data[i])
		assert.InDelta(t, want, structure.Data[i], 1e-9*math.Abs(cov0), "i=%d r=%g", i, grid.R(i))
	}
}

func TestCovarianceDecreasesWithSeparation(t *testing.T) {
	const r0, L0 = 0.1, 30.0
	grid := optics.NewGrid(32, 0.1)
	cov := PhaseCovarianceVonKarman(r0, L0)(grid)
	structure := PhaseStructureFunctionVonKarman(r0, L0)(grid)

	// Walk outward from the origin along the +x axis.
	row := (grid.Ny / 2) * grid.Nx
	prevCov := math.Inf(1)
	prevStruct := -1.0
	for ix := grid.Nx / 2; ix < grid.Nx; ix++ {
		c := cov.Data[row+ix]
		d := structure.Data[row+ix]
		assert.Less(t, c, prevCov, "ix=%d", ix)
		assert.Greater(t, d, prevStruct, "ix=%d", ix)
		prevCov, prevStruct = c, d
	}
}

func TestStructureFunctionKolmogorovLimit(t *testing.T) {
	// For separations far below the outer scale the von Karman structure
	// function reduces to the Kolmogorov form 6.88*(r/r0)^(5/3).
	const r0 = 0.1
	L0 := 1e6
	grid := optics.NewGrid(4, r0) // sample at exactly r = r0 on the x axis

	structure := PhaseStructureFunctionVonKarman(r0, L0)(grid)

	i := (grid.Ny/2)*grid.Nx + grid.Nx/2 + 1
	require.InDelta(t, r0, grid.R(i), 1e-15)
	assert.InEpsilon(t, 6.88, structure.Data[i], 0.02)
}
