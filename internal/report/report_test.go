package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywatch-data/seeing.report/internal/db"
)

func TestWriteRunReport(t *testing.T) {
	run := db.NewRun()
	run.SeeingArcsec = 1.0
	run.FriedParameter = 0.101
	run.OuterScale = 25
	run.LayerCount = 6

	samples := []db.Sample{
		{RunID: run.ID, T: 0.0, RMSPhaseRad: 1.1, PVPhaseRad: 6.5},
		{RunID: run.ID, T: 0.1, RMSPhaseRad: 1.2, PVPhaseRad: 7.0},
		{RunID: run.ID, T: 0.2, RMSPhaseRad: 1.15, PVPhaseRad: 6.8},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRunReport(&buf, run, samples))

	html := buf.String()
	assert.Contains(t, html, "RMS wavefront phase")
	assert.Contains(t, html, "Peak-to-valley wavefront phase")
	assert.Contains(t, html, run.ID)
	assert.True(t, strings.Contains(html, "echarts"), "page should embed echarts")
}

func TestWriteRunReportNoSamples(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRunReport(&buf, db.NewRun(), nil)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
