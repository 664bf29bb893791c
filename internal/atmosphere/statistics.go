package atmosphere

import (
	"math"

	"github.com/skywatch-data/seeing.report/internal/optics"
	"github.com/skywatch-data/seeing.report/internal/special"
)

// ReferenceWavelength is the wavelength, in meters, at which turbulence
// strength parameters are conventionally quoted.
const ReferenceWavelength = 500e-9

// rEpsilon keeps the radial coordinate away from the r=0 singularity of the
// von Karman expressions.
const rEpsilon = 1e-10

// PhaseCovarianceVonKarman returns a field generator for the spatial phase
// covariance function of von Karman turbulence with Fried parameter r0 and
// outer scale L0, both in meters. The generator evaluates the covariance at
// the polar radius of every grid sample.
func PhaseCovarianceVonKarman(r0, L0 float64) optics.FieldGenerator {
	return func(grid optics.Grid) optics.Field {
		a := math.Pow(L0/r0, 5.0/3)
		b := math.Gamma(11.0/6) / (math.Pow(2, 5.0/6) * math.Pow(math.Pi, 8.0/3))
		c := math.Pow(24.0/5*math.Gamma(6.0/5), 5.0/6)

		out := optics.NewField(grid)
		for i := range out.Data {
			r := grid.R(i) + rEpsilon
			x := 2 * math.Pi * r / L0
			d := math.Pow(x, 5.0/6)
			e := special.BesselK(5.0/6, x)
			out.Data[i] = a * b * c * d * e
		}
		return out
	}
}

// PhaseStructureFunctionVonKarman returns a field generator for the phase
// structure function of von Karman turbulence. The structure function
// satisfies D(r) = 2*(B(0) - B(r)) where B is the phase covariance.
func PhaseStructureFunctionVonKarman(r0, L0 float64) optics.FieldGenerator {
	return func(grid optics.Grid) optics.Field {
		a := math.Pow(L0/r0, 5.0/3)
		b := math.Pow(2, 1.0/6) * math.Gamma(11.0/6) / math.Pow(math.Pi, 8.0/3)
		c := math.Pow(24.0/5*math.Gamma(6.0/5), 5.0/6)
		d := math.Gamma(5.0/6) / math.Pow(2, 1.0/6)

		out := optics.NewField(grid)
		for i := range out.Data {
			r := grid.R(i) + rEpsilon
			x := 2 * math.Pi * r / L0
			e := math.Pow(x, 5.0/6)
			f := special.BesselK(5.0/6, x)
			out.Data[i] = a * b * c * (d - e*f)
		}
		return out
	}
}

// PowerSpectralDensityVonKarman returns a field generator for the spatial
// power spectral density of the turbulent phase. It is evaluated on a
// spatial-frequency grid whose radial coordinate is the angular frequency in
// rad/m. The singular DC component is forced to zero.
func PowerSpectralDensityVonKarman(r0, L0 float64) optics.FieldGenerator {
	return func(grid optics.Grid) optics.Field {
		u0 := 2 * math.Pi / L0
		r053 := math.Pow(r0, -5.0/3)
		fourPi2 := 4 * math.Pi * math.Pi

		out := optics.NewField(grid)
		for i := range out.Data {
			u := grid.R(i) + rEpsilon
			if u < 1e-9 {
				out.Data[i] = 0
				continue
			}
			out.Data[i] = 0.0229 * math.Pow((u*u+u0*u0)/fourPi2, -11.0/6) * r053
		}
		return out
	}
}

// CnSquaredFromFriedParameter converts a Fried parameter r0, measured at the
// given wavelength, to the integrated refractive-index structure constant.
func CnSquaredFromFriedParameter(r0, wavelength float64) float64 {
	k := 2 * math.Pi / wavelength
	return math.Pow(r0, -5.0/3) / (0.423 * k * k)
}

// FriedParameterFromCnSquared converts an integrated Cn^2 to the Fried
// parameter at the given wavelength. It is the exact inverse of
// CnSquaredFromFriedParameter.
func FriedParameterFromCnSquared(cnSquared, wavelength float64) float64 {
	k := 2 * math.Pi / wavelength
	return math.Pow(0.423*cnSquared*k*k, -3.0/5)
}

// SeeingToFriedParameter converts a seeing FWHM in arcseconds to the Fried
// parameter in meters, using theta = 0.98 lambda / r0.
func SeeingToFriedParameter(seeing, wavelength float64) float64 {
	return 0.98 * wavelength / (seeing / 3600 * math.Pi / 180)
}

// FriedParameterToSeeing converts a Fried parameter in meters to the seeing
// FWHM in arcseconds. It is the exact inverse of SeeingToFriedParameter.
func FriedParameterToSeeing(r0, wavelength float64) float64 {
	return 0.98 * wavelength / r0 * 180 / math.Pi * 3600
}
