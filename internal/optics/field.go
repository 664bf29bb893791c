package optics

import "math"

// Field pairs a scalar value with every sample of a grid.
type Field struct {
	Grid Grid
	Data []float64
}

// NewField returns a zero-valued field over g.
func NewField(g Grid) Field {
	return Field{Grid: g, Data: make([]float64, g.Size())}
}

// FieldGenerator produces a field when evaluated on a grid. The turbulence
// statistics functions return these so that the same parameterization can be
// sampled on any grid.
type FieldGenerator func(Grid) Field

// Copy returns a deep copy of the field.
func (f Field) Copy() Field {
	out := Field{Grid: f.Grid, Data: make([]float64, len(f.Data))}
	copy(out.Data, f.Data)
	return out
}

// AddTo accumulates f into dst elementwise. The two fields must have the
// same number of samples.
func (f Field) AddTo(dst Field) {
	for i, v := range f.Data {
		dst.Data[i] += v
	}
}

// Scale multiplies every sample by s in place.
func (f Field) Scale(s float64) {
	for i := range f.Data {
		f.Data[i] *= s
	}
}

// RMS returns the root mean square of the field values.
func (f Field) RMS() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range f.Data {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(f.Data)))
}

// PeakToValley returns the difference between the largest and smallest value.
func (f Field) PeakToValley() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	lo, hi := f.Data[0], f.Data[0]
	for _, v := range f.Data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}
