package optics

// Element is an optical element that a wavefront can pass through in either
// direction. Forward and Backward return a transformed copy: implementations
// must never mutate the wavefront they are given.
type Element interface {
	Forward(wf *Wavefront) (*Wavefront, error)
	Backward(wf *Wavefront) (*Wavefront, error)
	OutputGrid() Grid
}
