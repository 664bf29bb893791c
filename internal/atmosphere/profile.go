package atmosphere

import "github.com/skywatch-data/seeing.report/internal/optics"

// standardProfile is a six-layer reference turbulence profile (Guyon 2005):
// altitudes in meters and the fraction of the integrated Cn^2 carried by
// each layer.
var standardProfile = []struct {
	height   float64
	fraction float64
}{
	{500, 0.2283},
	{1000, 0.0883},
	{2000, 0.0666},
	{4000, 0.1458},
	{8000, 0.3350},
	{16000, 0.1350},
}

// StandardWindSpeed is the wind speed, in m/s along the first axis, given to
// every layer of the standard profile.
const StandardWindSpeed = 10.0

// MakeStandardLayers builds the six-layer standard atmosphere over grid for
// a target Fried parameter r0 (meters, at the reference wavelength) and a
// shared outer scale. Layer realizations derive deterministically from seed.
func MakeStandardLayers(grid optics.Grid, r0, outerScale float64, seed uint64) []Layer {
	total := CnSquaredFromFriedParameter(r0, ReferenceWavelength)

	layers := make([]Layer, len(standardProfile))
	for i, p := range standardProfile {
		layers[i] = NewSpectralLayer(
			grid,
			total*p.fraction,
			outerScale,
			[2]float64{StandardWindSpeed, 0},
			p.height,
			seed+uint64(i),
		)
	}
	return layers
}
