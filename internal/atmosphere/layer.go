// Package atmosphere models optical turbulence as a stack of infinitely-thin
// phase screens at discrete altitudes. Individual layers advect and evolve
// independently; a MultiLayerAtmosphere composes them into a single optical
// element, optionally with Fresnel propagation between altitudes so that
// scintillation develops as light travels down through the stack.
package atmosphere

import (
	"errors"
	"math/cmplx"

	"github.com/skywatch-data/seeing.report/internal/optics"
)

// ErrNotImplemented is returned when an abstract layer operation is invoked
// on LayerBase directly. Concrete layer types must override these methods;
// hitting this error indicates a missing override, not a runtime condition.
var ErrNotImplemented = errors.New("atmosphere: capability not implemented")

// Layer is a single infinitely-thin atmospheric phase screen. It behaves as
// a pure-phase optical element: passing a wavefront through it multiplies
// the electric field by exp(i*phase) without resampling.
//
// Concrete implementations embed LayerBase for the shared state and must
// supply EvolveUntil, Reset, PhaseFor and the strength and outer-scale
// setters.
type Layer interface {
	optics.Element

	// InputGrid returns the grid the layer's phase screen is defined on.
	InputGrid() optics.Grid

	// EvolveUntil advances the phase screen to represent the turbulence at
	// time t. Time must be non-decreasing per layer.
	EvolveUntil(t float64) error

	// Reset discards the current phase screen and draws a fresh random
	// realization consistent with the layer's parameters.
	Reset() error

	// PhaseFor returns the phase screen in radians at the given wavelength.
	PhaseFor(wavelength float64) (optics.Field, error)

	// CnSquared returns the layer's integrated Cn^2.
	CnSquared() float64
	SetCnSquared(v float64) error

	// OuterScale returns the outer scale L0 of the layer in meters.
	OuterScale() float64
	SetOuterScale(v float64) error

	Velocity() [2]float64
	SetVelocity(v [2]float64)
	// SetWindSpeed sets a scalar wind speed, directed along the first axis.
	SetWindSpeed(speed float64)

	Height() float64
	Time() float64
	// SetTime is equivalent to EvolveUntil.
	SetTime(t float64) error
}

// LayerBase carries the state shared by every layer implementation and
// provides the abstract operations, which fail with ErrNotImplemented until
// overridden.
type LayerBase struct {
	grid       optics.Grid
	cnSquared  float64
	outerScale float64
	velocity   [2]float64
	height     float64
	t          float64
}

// NewLayerBase returns the shared layer state. A concrete layer embeds the
// result and remains responsible for initializing its own phase screen.
func NewLayerBase(grid optics.Grid, cnSquared, outerScale float64, velocity [2]float64, height float64) LayerBase {
	return LayerBase{
		grid:       grid,
		cnSquared:  cnSquared,
		outerScale: outerScale,
		velocity:   velocity,
		height:     height,
	}
}

// InputGrid returns the grid the phase screen is defined on.
func (b *LayerBase) InputGrid() optics.Grid { return b.grid }

// OutputGrid equals InputGrid: a phase screen does not resample.
func (b *LayerBase) OutputGrid() optics.Grid { return b.grid }

// EvolveUntil must be overridden by a concrete layer.
func (b *LayerBase) EvolveUntil(t float64) error { return ErrNotImplemented }

// Reset must be overridden by a concrete layer.
func (b *LayerBase) Reset() error { return ErrNotImplemented }

// PhaseFor must be overridden by a concrete layer.
func (b *LayerBase) PhaseFor(wavelength float64) (optics.Field, error) {
	return optics.Field{}, ErrNotImplemented
}

// CnSquared returns the layer's integrated Cn^2.
func (b *LayerBase) CnSquared() float64 { return b.cnSquared }

// SetCnSquared must be overridden by a concrete layer, which decides how a
// strength change affects its screen. Overrides record the new value with
// storeCnSquared.
func (b *LayerBase) SetCnSquared(v float64) error { return ErrNotImplemented }

// OuterScale returns the outer scale L0 in meters. L0 and OuterScale are
// two names for the same attribute.
func (b *LayerBase) OuterScale() float64 { return b.outerScale }

// L0 is an alias for OuterScale.
func (b *LayerBase) L0() float64 { return b.outerScale }

// SetOuterScale must be overridden by a concrete layer.
func (b *LayerBase) SetOuterScale(v float64) error { return ErrNotImplemented }

func (b *LayerBase) storeCnSquared(v float64)  { b.cnSquared = v }
func (b *LayerBase) storeOuterScale(v float64) { b.outerScale = v }

// Velocity returns the two-dimensional wind velocity of the layer.
func (b *LayerBase) Velocity() [2]float64 { return b.velocity }

// SetVelocity sets the two-dimensional wind velocity.
func (b *LayerBase) SetVelocity(v [2]float64) { b.velocity = v }

// SetWindSpeed sets a scalar wind speed, directed along the first axis.
func (b *LayerBase) SetWindSpeed(speed float64) { b.velocity = [2]float64{speed, 0} }

// Height returns the altitude of the layer in meters. Ordering in a
// multi-layer atmosphere is by value; zero and negative heights are valid.
func (b *LayerBase) Height() float64 { return b.height }

// Time returns the layer's current simulation time.
func (b *LayerBase) Time() float64 { return b.t }

// SetTime is equivalent to EvolveUntil. Like EvolveUntil it must be
// overridden by a concrete layer.
func (b *LayerBase) SetTime(t float64) error { return b.EvolveUntil(t) }

func (b *LayerBase) storeTime(t float64) { b.t = t }

// Forward returns a copy of wf with exp(+i*phase) applied. It fails with
// ErrNotImplemented on the base type because PhaseFor is abstract.
func (b *LayerBase) Forward(wf *optics.Wavefront) (*optics.Wavefront, error) {
	return applyPhase(b, wf, 1)
}

// Backward returns a copy of wf with exp(-i*phase) applied.
func (b *LayerBase) Backward(wf *optics.Wavefront) (*optics.Wavefront, error) {
	return applyPhase(b, wf, -1)
}

// phaser is the part of Layer that applyPhase needs; LayerBase satisfies it
// so the base Forward/Backward surface the not-implemented error.
type phaser interface {
	PhaseFor(wavelength float64) (optics.Field, error)
}

// applyPhase multiplies a copy of wf elementwise by exp(i*sign*phase).
func applyPhase(l phaser, wf *optics.Wavefront, sign float64) (*optics.Wavefront, error) {
	phase, err := l.PhaseFor(wf.Wavelength)
	if err != nil {
		return nil, err
	}
	out := wf.Copy()
	for i := range out.E {
		out.E[i] *= cmplx.Exp(complex(0, sign*phase.Data[i]))
	}
	return out, nil
}

// forwardThrough and backwardThrough let concrete layers implement the
// Element interface as one-liners that dispatch to their own PhaseFor.
func forwardThrough(l phaser, wf *optics.Wavefront) (*optics.Wavefront, error) {
	return applyPhase(l, wf, 1)
}

func backwardThrough(l phaser, wf *optics.Wavefront) (*optics.Wavefront, error) {
	return applyPhase(l, wf, -1)
}
