package atmosphere

import (
	"errors"
	"log"
	"sort"

	"github.com/skywatch-data/seeing.report/internal/optics"
)

// ErrScintillationPhase is returned by MultiLayerAtmosphere.PhaseFor when
// scintillation is enabled: once diffraction couples the layers there is no
// single unwrapped phase.
var ErrScintillationPhase = errors.New("atmosphere: cannot get the unwrapped phase for an atmosphere with scintillation")

// MultiLayerAtmosphere composes atmospheric layers into one optical element.
// For phase and time purposes the layers keep their given sequence order;
// for propagation they are traversed in descending altitude, with a Fresnel
// propagator bridging each altitude gap when scintillation is enabled.
//
// The propagation chain is rebuilt lazily: replacing the layer sequence or
// toggling scintillation marks it dirty, and the next traversal rebuilds it.
// The type is not safe for concurrent use.
type MultiLayerAtmosphere struct {
	layers        []Layer
	scintillation bool
	elements      []optics.Element
	dirty         bool
	t             float64
}

// Option configures a MultiLayerAtmosphere at construction.
type Option func(*atmosphereOptions)

type atmosphereOptions struct {
	scintillation bool
	legacy        bool
	legacySet     bool
}

// WithScintillation enables Fresnel propagation between layers.
func WithScintillation(enabled bool) Option {
	return func(o *atmosphereOptions) { o.scintillation = enabled }
}

// WithScintilation is a misspelling retained for backward compatibility.
//
// Deprecated: use WithScintillation.
func WithScintilation(enabled bool) Option {
	return func(o *atmosphereOptions) {
		o.legacy = enabled
		o.legacySet = true
	}
}

// New returns a multi-layer atmosphere over the given layers. The
// propagation chain is built immediately.
func New(layers []Layer, opts ...Option) *MultiLayerAtmosphere {
	var o atmosphereOptions
	for _, opt := range opts {
		opt(&o)
	}
	scintillation := o.scintillation
	if o.legacySet {
		log.Printf("atmosphere: please use the correct spelling for scintillation")
		if o.legacy {
			scintillation = o.legacy
		}
	}

	m := &MultiLayerAtmosphere{
		layers:        layers,
		scintillation: scintillation,
		dirty:         true,
	}
	m.CalculatePropagators()
	return m
}

// CalculatePropagators rebuilds the ordered element chain. It is called
// automatically before any traversal of a dirty chain; calling it explicitly
// forces an immediate rebuild.
//
// Layers are sorted by descending height (stable, so equal heights keep their
// sequence order). With scintillation enabled a Fresnel propagator covers
// each height gap, and a final propagator carries the wavefront from the
// lowest layer down to the ground when that layer sits above altitude zero.
func (m *MultiLayerAtmosphere) CalculatePropagators() {
	order := make([]int, len(m.layers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return m.layers[order[i]].Height() > m.layers[order[j]].Height()
	})

	m.elements = m.elements[:0]
	if len(m.layers) == 0 {
		m.dirty = false
		return
	}
	grid := m.layers[0].InputGrid()

	for i, j := range order {
		m.elements = append(m.elements, m.layers[j])
		if m.scintillation && i < len(order)-1 {
			gap := m.layers[j].Height() - m.layers[order[i+1]].Height()
			m.elements = append(m.elements, optics.NewFresnelPropagator(grid, gap))
		}
	}

	lowest := m.layers[order[len(order)-1]].Height()
	if m.scintillation && lowest > 0 {
		m.elements = append(m.elements, optics.NewFresnelPropagator(grid, lowest))
	}

	m.dirty = false
}

// Layers returns the layer sequence.
func (m *MultiLayerAtmosphere) Layers() []Layer { return m.layers }

// SetLayers replaces the layer sequence. Ownership of the old sequence is
// dropped and the propagation chain is marked dirty.
func (m *MultiLayerAtmosphere) SetLayers(layers []Layer) {
	m.layers = layers
	m.dirty = true
}

// Scintillation reports whether propagation between layers is enabled.
func (m *MultiLayerAtmosphere) Scintillation() bool { return m.scintillation }

// SetScintillation enables or disables propagation between layers. The
// chain is marked dirty only when the value changes.
func (m *MultiLayerAtmosphere) SetScintillation(enabled bool) {
	if enabled != m.scintillation {
		m.dirty = true
	}
	m.scintillation = enabled
}

// Reset draws a fresh random realization for every layer, in sequence order.
func (m *MultiLayerAtmosphere) Reset() error {
	for _, l := range m.layers {
		if err := l.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// PhaseFor returns the total unwrapped phase in radians at the given
// wavelength, the elementwise sum of the per-layer phases in sequence order.
// It fails with ErrScintillationPhase when scintillation is enabled. All
// layers must share a compatible grid; this is a precondition, not checked.
func (m *MultiLayerAtmosphere) PhaseFor(wavelength float64) (optics.Field, error) {
	if m.scintillation {
		return optics.Field{}, ErrScintillationPhase
	}

	var sum optics.Field
	for _, l := range m.layers {
		phase, err := l.PhaseFor(wavelength)
		if err != nil {
			return optics.Field{}, err
		}
		if sum.Data == nil {
			sum = optics.NewField(phase.Grid)
		}
		sum.Grid = phase.Grid
		phase.AddTo(sum)
	}
	return sum, nil
}

// EvolveUntil advances every layer to time t, in sequence order.
func (m *MultiLayerAtmosphere) EvolveUntil(t float64) error {
	for _, l := range m.layers {
		if err := l.EvolveUntil(t); err != nil {
			return err
		}
	}
	m.t = t
	return nil
}

// Time returns the current global time.
func (m *MultiLayerAtmosphere) Time() float64 { return m.t }

// SetTime is equivalent to EvolveUntil. Advancing time does not invalidate
// the propagation chain, which depends only on heights and scintillation.
func (m *MultiLayerAtmosphere) SetTime(t float64) error { return m.EvolveUntil(t) }

// CnSquared returns the aggregate turbulence strength, the sum of the
// per-layer Cn^2 values.
func (m *MultiLayerAtmosphere) CnSquared() float64 {
	var sum float64
	for _, l := range m.layers {
		sum += l.CnSquared()
	}
	return sum
}

// SetCnSquared redistributes an aggregate Cn^2 over the layers in proportion
// to their current strengths, so the aggregate afterwards equals v exactly.
// At least one layer must currently have positive strength; a zero total is
// a precondition violation and divides by zero.
func (m *MultiLayerAtmosphere) SetCnSquared(v float64) error {
	total := m.CnSquared()
	for _, l := range m.layers {
		if err := l.SetCnSquared(l.CnSquared() / total * v); err != nil {
			return err
		}
	}
	return nil
}

// OuterScale returns the outer scale of the first layer. The model assumes
// a shared outer scale across layers when this is meaningfully queried.
func (m *MultiLayerAtmosphere) OuterScale() float64 {
	return m.layers[0].OuterScale()
}

// SetOuterScale broadcasts the same outer scale to every layer.
func (m *MultiLayerAtmosphere) SetOuterScale(v float64) error {
	for _, l := range m.layers {
		if err := l.SetOuterScale(v); err != nil {
			return err
		}
	}
	return nil
}

// L0 is an alias for OuterScale.
func (m *MultiLayerAtmosphere) L0() float64 { return m.OuterScale() }

// SetL0 is an alias for SetOuterScale.
func (m *MultiLayerAtmosphere) SetL0(v float64) error { return m.SetOuterScale(v) }

// OutputGrid returns the grid of the first layer.
func (m *MultiLayerAtmosphere) OutputGrid() optics.Grid {
	return m.layers[0].InputGrid()
}

// Forward passes a copy of wf through the element chain in order, rebuilding
// the chain first if it is dirty. The caller's wavefront is not mutated.
func (m *MultiLayerAtmosphere) Forward(wf *optics.Wavefront) (*optics.Wavefront, error) {
	if m.dirty {
		m.CalculatePropagators()
	}
	out := wf.Copy()
	for _, el := range m.elements {
		var err error
		out, err = el.Forward(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Backward passes a copy of wf through the element chain in reverse order,
// applying each element's backward operation.
func (m *MultiLayerAtmosphere) Backward(wf *optics.Wavefront) (*optics.Wavefront, error) {
	if m.dirty {
		m.CalculatePropagators()
	}
	out := wf.Copy()
	for i := len(m.elements) - 1; i >= 0; i-- {
		var err error
		out, err = m.elements[i].Backward(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
