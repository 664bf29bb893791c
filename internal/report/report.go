// Package report renders a recorded simulation run as a standalone HTML
// page using go-echarts.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/skywatch-data/seeing.report/internal/db"
)

// WriteRunReport renders an HTML report for one run: the RMS and
// peak-to-valley wavefront phase over simulation time, with the run's
// configuration in the chart subtitles.
func WriteRunReport(w io.Writer, run db.Run, samples []db.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("report: run %s has no samples", run.ID)
	}

	times := make([]string, len(samples))
	rms := make([]opts.LineData, len(samples))
	pv := make([]opts.LineData, len(samples))
	for i, s := range samples {
		times[i] = fmt.Sprintf("%.3f", s.T)
		rms[i] = opts.LineData{Value: s.RMSPhaseRad}
		pv[i] = opts.LineData{Value: s.PVPhaseRad}
	}

	subtitle := fmt.Sprintf("run=%s seeing=%.2f\" r0=%.3f m L0=%.1f m layers=%d scintillation=%t",
		run.ID, run.SeeingArcsec, run.FriedParameter, run.OuterScale,
		run.LayerCount, run.Scintillation)

	rmsChart := charts.NewLine()
	rmsChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Turbulence Run Report", Width: "1100px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: "RMS wavefront phase", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "RMS phase (rad)"}),
	)
	rmsChart.SetXAxis(times).AddSeries("rms", rms,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	pvChart := charts.NewLine()
	pvChart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: "Peak-to-valley wavefront phase", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "P-V phase (rad)"}),
	)
	pvChart.SetXAxis(times).AddSeries("pv", pv,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	page := components.NewPage()
	page.SetPageTitle("Turbulence Run Report")
	page.AddCharts(rmsChart, pvChart)
	return page.Render(w)
}
