package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/skywatch-data/seeing.report/internal/atmosphere"
	"github.com/skywatch-data/seeing.report/internal/config"
	"github.com/skywatch-data/seeing.report/internal/db"
	"github.com/skywatch-data/seeing.report/internal/optics"
	"github.com/skywatch-data/seeing.report/internal/plotting"
	"github.com/skywatch-data/seeing.report/internal/report"
	"github.com/skywatch-data/seeing.report/internal/version"
)

func main() {
	// Parameter file; individual flags override its values
	configPath := flag.String("config", "", "JSON parameter file (flags override file values)")

	// Turbulence configuration
	seeing := flag.Float64("seeing", 1.0, "Seeing at 500 nm in arcseconds (ignored when -r0 is set)")
	r0Flag := flag.Float64("r0", 0, "Fried parameter at 500 nm in meters (overrides -seeing)")
	outerScale := flag.Float64("outer-scale", 40, "Von Karman outer scale in meters")
	wavelength := flag.Float64("wavelength", atmosphere.ReferenceWavelength, "Sensing wavelength in meters")
	scintillation := flag.Bool("scintillation", false, "Propagate between layers with Fresnel diffraction")

	// Grid configuration
	gridSize := flag.Int("grid", 128, "Samples per grid axis")
	pitch := flag.Float64("pitch", 0.05, "Grid sample pitch in meters")

	// Time evolution
	duration := flag.Float64("duration", 10, "Simulated duration in seconds")
	dt := flag.Float64("dt", 0.1, "Simulated time step in seconds")
	seed := flag.Uint64("seed", 1, "Random seed for screen generation")

	// Outputs
	dbPath := flag.String("db", "seeing.db", "SQLite database path for run records")
	reportPath := flag.String("report", "", "Write an HTML run report to this path")
	screenPath := flag.String("screen", "", "Write a PNG of the final lowest-layer phase screen to this path")
	structurePath := flag.String("structure", "", "Write a PNG of the phase structure function to this path")

	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("seeing-sim %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *configPath != "" {
		cfg, err := config.LoadSimConfig(*configPath)
		if err != nil {
			log.Fatalf("Could not load config %s: %v", *configPath, err)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

		// File values apply only where the flag was left at its default.
		if !set["seeing"] {
			*seeing = cfg.GetSeeingArcsec()
		}
		if !set["r0"] {
			*r0Flag = cfg.GetFriedParam()
		}
		if !set["outer-scale"] {
			*outerScale = cfg.GetOuterScale()
		}
		if !set["wavelength"] {
			*wavelength = cfg.GetWavelength()
		}
		if !set["scintillation"] {
			*scintillation = cfg.GetScintillation()
		}
		if !set["grid"] {
			*gridSize = cfg.GetGridSize()
		}
		if !set["pitch"] {
			*pitch = cfg.GetPitch()
		}
		if !set["duration"] {
			*duration = cfg.GetDuration()
		}
		if !set["dt"] {
			*dt = cfg.GetTimeStep()
		}
		if !set["seed"] {
			*seed = cfg.GetSeed()
		}
	}

	r0 := *r0Flag
	if r0 <= 0 {
		r0 = atmosphere.SeeingToFriedParameter(*seeing, atmosphere.ReferenceWavelength)
	}
	if *dt <= 0 {
		log.Fatalf("Time step must be positive, got %g", *dt)
	}
	if *gridSize < 2 {
		log.Fatalf("Grid must have at least 2 samples per axis, got %d", *gridSize)
	}

	grid := optics.NewGrid(*gridSize, *pitch)
	layers := atmosphere.MakeStandardLayers(grid, r0, *outerScale, *seed)
	atmos := atmosphere.New(layers, atmosphere.WithScintillation(*scintillation))

	log.Printf("Atmosphere: %d layers, r0=%.4f m, seeing=%.2f\", L0=%.1f m, scintillation=%v",
		len(layers), r0, atmosphere.FriedParameterToSeeing(r0, atmosphere.ReferenceWavelength),
		*outerScale, *scintillation)
	log.Printf("Grid: %dx%d at %.3f m pitch (%.1f m aperture)",
		grid.Nx, grid.Ny, grid.Dx, float64(grid.Nx)*grid.Dx)

	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Could not open database %s: %v", *dbPath, err)
	}
	defer database.Close()

	run := db.NewRun()
	run.SeeingArcsec = atmosphere.FriedParameterToSeeing(r0, atmosphere.ReferenceWavelength)
	run.FriedParameter = r0
	run.CnSquared = atmos.CnSquared()
	run.OuterScale = *outerScale
	run.Wavelength = *wavelength
	run.LayerCount = len(layers)
	run.Scintillation = *scintillation
	if err := database.InsertRun(run); err != nil {
		log.Fatalf("Could not record run: %v", err)
	}
	log.Printf("Run %s", run.ID)

	steps := int(*duration / *dt)
	start := time.Now()
	for i := 0; i <= steps; i++ {
		t := float64(i) * *dt
		if err := atmos.EvolveUntil(t); err != nil {
			log.Fatalf("Evolution to t=%.3f s failed: %v", t, err)
		}

		rms, pv, err := phaseStats(atmos, grid, *wavelength, *scintillation)
		if err != nil {
			log.Fatalf("Phase statistics at t=%.3f s failed: %v", t, err)
		}

		if err := database.RecordSample(db.Sample{
			RunID:       run.ID,
			T:           t,
			RMSPhaseRad: rms,
			PVPhaseRad:  pv,
		}); err != nil {
			log.Fatalf("Could not record sample at t=%.3f s: %v", t, err)
		}
	}
	log.Printf("Simulated %d steps in %v", steps+1, time.Since(start).Round(time.Millisecond))

	if *reportPath != "" {
		if err := writeReport(database, run.ID, *reportPath); err != nil {
			log.Fatalf("Could not write report: %v", err)
		}
		log.Printf("Report: %s", *reportPath)
	}

	if *screenPath != "" {
		screen, err := layers[0].PhaseFor(*wavelength)
		if err != nil {
			log.Fatalf("Could not extract lowest-layer screen: %v", err)
		}
		title := fmt.Sprintf("Lowest-layer phase at %.0f nm, t=%.1f s", *wavelength*1e9, *duration)
		if err := plotting.SavePhaseScreen(screen, title, *screenPath); err != nil {
			log.Fatalf("Could not plot phase screen: %v", err)
		}
		log.Printf("Phase screen: %s", *screenPath)
	}

	if *structurePath != "" {
		maxSep := float64(grid.Nx) * grid.Dx / 2
		if err := plotting.SaveStructureFunction(r0, *outerScale, maxSep, *structurePath); err != nil {
			log.Fatalf("Could not plot structure function: %v", err)
		}
		log.Printf("Structure function: %s", *structurePath)
	}
}

// phaseStats measures the RMS and peak-to-valley phase seen by a flat input
// wavefront. Without scintillation the summed layer phase is used directly;
// with scintillation the phase is taken from the propagated wavefront since
// the layer phases no longer add.
func phaseStats(atmos *atmosphere.MultiLayerAtmosphere, grid optics.Grid, wavelength float64, scintillation bool) (rms, pv float64, err error) {
	var phase optics.Field
	if scintillation {
		wf, err := atmos.Forward(optics.NewWavefront(grid, wavelength))
		if err != nil {
			return 0, 0, err
		}
		phase = wf.Phase()
	} else {
		phase, err = atmos.PhaseFor(wavelength)
		if err != nil {
			return 0, 0, err
		}
	}
	return phase.RMS(), phase.PeakToValley(), nil
}

func writeReport(database *db.DB, runID, path string) error {
	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	samples, err := database.SamplesForRun(runID)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return report.WriteRunReport(f, run, samples)
}
