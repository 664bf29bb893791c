// Package special implements the modified Bessel functions of fractional
// order used by the von Karman turbulence statistics. Neither the standard
// library nor gonum's mathext provides K_nu for non-integer nu, so the
// standard power-series and asymptotic-expansion formulas (Abramowitz &
// Stegun 9.6.10, 9.6.2 and 9.7.2) are implemented here directly.
package special

import "math"

const (
	seriesCutoff = 8.0 // switch from series to asymptotic expansion
	maxTerms     = 250
)

// BesselI returns the modified Bessel function of the first kind I_nu(x) for
// x >= 0, computed from its power series
//
//	I_nu(x) = sum_m (x/2)^(2m+nu) / (m! Gamma(m+nu+1)).
//
// The series converges for all x but loses accuracy for very large
// arguments; it is accurate over the range the turbulence statistics use.
func BesselI(nu, x float64) float64 {
	if x < 0 {
		return math.NaN()
	}
	if x == 0 {
		if nu == 0 {
			return 1
		}
		if nu > 0 {
			return 0
		}
		return math.Inf(1)
	}

	half := x / 2
	term := math.Pow(half, nu) / math.Gamma(nu+1)
	sum := term
	x2 := half * half
	for m := 1; m < maxTerms; m++ {
		term *= x2 / (float64(m) * (nu + float64(m)))
		sum += term
		if math.Abs(term) < math.Abs(sum)*1e-17 {
			break
		}
	}
	return sum
}

// BesselK returns the modified Bessel function of the second kind K_nu(x)
// for x > 0 and non-integer nu. For small arguments it uses the reflection
// formula
//
//	K_nu(x) = pi/2 * (I_-nu(x) - I_nu(x)) / sin(nu pi)
//
// and for large arguments the asymptotic expansion
//
//	K_nu(x) ~ sqrt(pi/(2x)) e^-x * sum_k a_k(nu) / x^k.
//
// Accuracy is limited to roughly nine significant digits near the crossover
// between the two methods, which is ample for the statistics here. Integer
// orders hit the pole of the reflection formula and are not supported.
func BesselK(nu, x float64) float64 {
	if x < 0 {
		return math.NaN()
	}
	if x == 0 {
		return math.Inf(1)
	}
	nu = math.Abs(nu) // K_-nu = K_nu

	if x <= seriesCutoff {
		s := math.Sin(nu * math.Pi)
		if s == 0 {
			return math.NaN()
		}
		return math.Pi / 2 * (BesselI(-nu, x) - BesselI(nu, x)) / s
	}

	// Asymptotic expansion; terms are summed until they stop decreasing.
	mu := 4 * nu * nu
	term := 1.0
	sum := term
	for k := 1; k < maxTerms; k++ {
		odd := float64(2*k - 1)
		next := term * (mu - odd*odd) / (8 * float64(k) * x)
		if math.Abs(next) >= math.Abs(term) {
			break
		}
		term = next
		sum += term
		if math.Abs(term) < math.Abs(sum)*1e-17 {
			break
		}
	}
	return math.Sqrt(math.Pi/(2*x)) * math.Exp(-x) * sum
}
