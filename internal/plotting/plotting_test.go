package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skywatch-data/seeing.report/internal/atmosphere"
	"github.com/skywatch-data/seeing.report/internal/optics"
)

func TestSavePhaseScreen(t *testing.T) {
	grid := optics.NewGrid(32, 0.1)
	layer := atmosphere.NewSpectralLayer(grid,
		atmosphere.CnSquaredFromFriedParameter(0.2, atmosphere.ReferenceWavelength),
		20, [2]float64{10, 0}, 0, 42)

	screen, err := layer.PhaseFor(atmosphere.ReferenceWavelength)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "screen.png")
	require.NoError(t, SavePhaseScreen(screen, "phase screen", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestSaveStructureFunction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structure.png")
	require.NoError(t, SaveStructureFunction(0.2, 20, 10, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
