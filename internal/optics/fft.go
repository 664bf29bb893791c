package optics

import "gonum.org/v1/gonum/dsp/fourier"

// FFT2 computes two-dimensional discrete Fourier transforms of row-major
// complex data by applying gonum's 1D complex FFT along rows and then
// columns. Both directions are unnormalized: Inverse(Forward(x)) scales x by
// nx*ny. Frequencies follow standard FFT ordering (DC at index 0, negative
// frequencies in the upper half).
type FFT2 struct {
	nx, ny int
	row    *fourier.CmplxFFT
	col    *fourier.CmplxFFT
	in     []complex128
	out    []complex128
}

// NewFFT2 returns a transformer for nx-by-ny data.
func NewFFT2(nx, ny int) *FFT2 {
	n := nx
	if ny > n {
		n = ny
	}
	return &FFT2{
		nx:  nx,
		ny:  ny,
		row: fourier.NewCmplxFFT(nx),
		col: fourier.NewCmplxFFT(ny),
		in:  make([]complex128, n),
		out: make([]complex128, n),
	}
}

// Forward computes the unnormalized forward DFT of a in place. The slice
// must hold nx*ny samples.
func (t *FFT2) Forward(a []complex128) {
	t.transform(a, func(dst, src []complex128, tr *fourier.CmplxFFT) {
		tr.Coefficients(dst, src)
	})
}

// Inverse computes the unnormalized inverse DFT of a in place. Divide by
// nx*ny to undo a Forward transform.
func (t *FFT2) Inverse(a []complex128) {
	t.transform(a, func(dst, src []complex128, tr *fourier.CmplxFFT) {
		tr.Sequence(dst, src)
	})
}

func (t *FFT2) transform(a []complex128, apply func(dst, src []complex128, tr *fourier.CmplxFFT)) {
	if len(a) != t.nx*t.ny {
		panic("optics: FFT2 length mismatch")
	}
	for y := 0; y < t.ny; y++ {
		row := a[y*t.nx : (y+1)*t.nx]
		copy(t.in[:t.nx], row)
		apply(row, t.in[:t.nx], t.row)
	}
	for x := 0; x < t.nx; x++ {
		for y := 0; y < t.ny; y++ {
			t.in[y] = a[y*t.nx+x]
		}
		apply(t.out[:t.ny], t.in[:t.ny], t.col)
		for y := 0; y < t.ny; y++ {
			a[y*t.nx+x] = t.out[y]
		}
	}
}

// FFTFreq returns the frequency of FFT bin k out of n, in units of the bin
// spacing: 0, 1, ..., n/2-1, -n/2, ..., -1 for even n.
func FFTFreq(k, n int) int {
	if k < (n+1)/2 {
		return k
	}
	return k - n
}
