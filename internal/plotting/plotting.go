// Package plotting renders diagnostic plots of phase screens and turbulence
// statistics using gonum/plot.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/skywatch-data/seeing.report/internal/atmosphere"
	"github.com/skywatch-data/seeing.report/internal/optics"
)

// fieldGrid adapts an optics.Field to plotter.GridXYZ.
type fieldGrid struct {
	f optics.Field
}

func (g fieldGrid) Dims() (c, r int) { return g.f.Grid.Nx, g.f.Grid.Ny }

func (g fieldGrid) Z(c, r int) float64 { return g.f.Data[r*g.f.Grid.Nx+c] }

func (g fieldGrid) X(c int) float64 { return float64(c-g.f.Grid.Nx/2) * g.f.Grid.Dx }

func (g fieldGrid) Y(r int) float64 { return float64(r-g.f.Grid.Ny/2) * g.f.Grid.Dy }

// SavePhaseScreen writes a heatmap of a phase screen to path. The format
// follows the file extension (.png, .pdf, .svg).
func SavePhaseScreen(f optics.Field, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	h := plotter.NewHeatMap(fieldGrid{f}, palette.Heat(128, 1))
	p.Add(h)

	if err := p.Save(16*vg.Centimeter, 16*vg.Centimeter, path); err != nil {
		return fmt.Errorf("failed to save phase screen plot: %w", err)
	}
	return nil
}

// SaveStructureFunction writes a log-log plot of the von Karman phase
// structure function for the given Fried parameter and outer scale,
// evaluated out to maxSep meters.
func SaveStructureFunction(r0, L0, maxSep float64, path string) error {
	const samples = 200
	gen := atmosphere.PhaseStructureFunctionVonKarman(r0, L0)

	// Evaluate along a single radial line by using a 1-row grid.
	grid := optics.Grid{Nx: 2 * samples, Ny: 1, Dx: maxSep / samples, Dy: maxSep / samples}
	field := gen(grid)

	pts := make(plotter.XYs, 0, samples)
	for i := 0; i < grid.Nx; i++ {
		r := grid.R(i)
		if r <= 0 || grid.X(i) < 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: r, Y: field.Data[i]})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Phase structure function (r0=%.3g m, L0=%.3g m)", r0, L0)
	p.X.Label.Text = "separation (m)"
	p.Y.Label.Text = "D (rad^2)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build structure function line: %w", err)
	}
	p.Add(line, plotter.NewGrid())

	if err := p.Save(18*vg.Centimeter, 12*vg.Centimeter, path); err != nil {
		return fmt.Errorf("failed to save structure function plot: %w", err)
	}
	return nil
}
