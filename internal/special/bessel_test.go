package special

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Half-integer orders have elementary closed forms, which pin down both the
// series branch (x <= 8) and the asymptotic branch (x > 8):
//
//	I_1/2(x) = sqrt(2/(pi x)) sinh(x)
//	K_1/2(x) = sqrt(pi/(2x)) e^-x
//	K_3/2(x) = sqrt(pi/(2x)) e^-x (1 + 1/x)

func TestBesselIHalfOrder(t *testing.T) {
	for _, x := range []float64{0.01, 0.5, 1, 2, 5, 10} {
		want := math.Sqrt(2/(math.Pi*x)) * math.Sinh(x)
		assert.InEpsilon(t, want, BesselI(0.5, x), 1e-12, "x=%g", x)
	}
}

func TestBesselKHalfOrder(t *testing.T) {
	for _, x := range []float64{0.01, 0.5, 1, 2, 5, 7.9, 8.1, 12, 25, 50} {
		want := math.Sqrt(math.Pi/(2*x)) * math.Exp(-x)
		assert.InEpsilon(t, want, BesselK(0.5, x), 1e-9, "x=%g", x)

		want32 := want * (1 + 1/x)
		assert.InEpsilon(t, want32, BesselK(1.5, x), 1e-9, "x=%g", x)
	}
}

func TestBesselKNegativeOrderSymmetry(t *testing.T) {
	for _, x := range []float64{0.3, 1, 4, 10} {
		assert.Equal(t, BesselK(5.0/6, x), BesselK(-5.0/6, x), "x=%g", x)
	}
}

func TestBesselWronskian(t *testing.T) {
	// I_nu(x) K_nu+1(x) + I_nu+1(x) K_nu(x) = 1/x holds for all nu and x,
	// and mixes both computation branches.
	nu := 5.0 / 6
	for _, x := range []float64{0.05, 0.5, 1, 3, 6, 7.99, 8.01, 10} {
		w := BesselI(nu, x)*BesselK(nu+1, x) + BesselI(nu+1, x)*BesselK(nu, x)
		assert.InEpsilon(t, 1/x, w, 1e-6, "x=%g", x)
	}
}

func TestBesselKSmallArgumentLimit(t *testing.T) {
	// K_nu(x) -> Gamma(nu)/2 * (2/x)^nu as x -> 0.
	nu := 5.0 / 6
	x := 1e-4
	want := math.Gamma(nu) / 2 * math.Pow(2/x, nu)
	assert.InEpsilon(t, want, BesselK(nu, x), 1e-3)
}

func TestBesselKFiveSixthsShape(t *testing.T) {
	// K_5/6 is positive and strictly decreasing.
	prev := math.Inf(1)
	for x := 0.1; x < 20; x += 0.1 {
		v := BesselK(5.0/6, x)
		assert.Positive(t, v, "x=%g", x)
		assert.Less(t, v, prev, "x=%g", x)
		prev = v
	}
}

func TestBesselEdgeCases(t *testing.T) {
	assert.True(t, math.IsInf(BesselK(5.0/6, 0), 1))
	assert.True(t, math.IsNaN(BesselK(5.0/6, -1)))
	assert.True(t, math.IsNaN(BesselI(5.0/6, -1)))
	assert.Equal(t, 1.0, BesselI(0, 0))
	assert.Equal(t, 0.0, BesselI(5.0/6, 0))
}
