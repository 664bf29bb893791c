// Package db stores simulation runs and their per-step samples in sqlite.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// OpenDB opens the sqlite database at path without touching the schema.
// Use NewDB unless migrations are being managed externally.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &DB{sqlDB}, nil
}

// NewDB opens the sqlite database at path and brings the schema up to date
// with the embedded migrations.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(MigrationsFS()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}

// Run is the configuration of one recorded simulation run.
type Run struct {
	ID             string
	CreatedAt      time.Time
	SeeingArcsec   float64
	FriedParameter float64
	CnSquared      float64
	OuterScale     float64
	Wavelength     float64
	LayerCount     int
	Scintillation  bool
}

// Sample is one time step of a recorded run.
type Sample struct {
	RunID       string
	T           float64
	RMSPhaseRad float64
	PVPhaseRad  float64
}

// NewRun returns a Run with a fresh random ID.
func NewRun() Run {
	return Run{ID: uuid.NewString()}
}

// InsertRun records a run's configuration.
func (db *DB) InsertRun(run Run) error {
	_, err := db.Exec(`
		INSERT INTO runs (
			run_id, seeing_arcsec, fried_parameter_m, cn_squared,
			outer_scale_m, wavelength_m, layer_count, scintillation
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SeeingArcsec, run.FriedParameter, run.CnSquared,
		run.OuterScale, run.Wavelength, run.LayerCount, run.Scintillation)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// RecordSample appends one time step to a run.
func (db *DB) RecordSample(s Sample) error {
	_, err := db.Exec(`
		INSERT INTO samples (run_id, t, rms_phase_rad, pv_phase_rad)
		VALUES (?, ?, ?, ?)`,
		s.RunID, s.T, s.RMSPhaseRad, s.PVPhaseRad)
	if err != nil {
		return fmt.Errorf("failed to record sample: %w", err)
	}
	return nil
}

// GetRun loads a run's configuration by ID.
func (db *DB) GetRun(id string) (Run, error) {
	var run Run
	err := db.QueryRow(`
		SELECT run_id, created_at, seeing_arcsec, fried_parameter_m,
			cn_squared, outer_scale_m, wavelength_m, layer_count, scintillation
		FROM runs WHERE run_id = ?`, id).Scan(
		&run.ID, &run.CreatedAt, &run.SeeingArcsec, &run.FriedParameter,
		&run.CnSquared, &run.OuterScale, &run.Wavelength, &run.LayerCount,
		&run.Scintillation)
	if err != nil {
		return Run{}, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return run, nil
}

// SamplesForRun returns a run's samples ordered by simulation time.
func (db *DB) SamplesForRun(id string) ([]Sample, error) {
	rows, err := db.Query(`
		SELECT run_id, t, rms_phase_rad, pv_phase_rad
		FROM samples WHERE run_id = ? ORDER BY t`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples for run %s: %w", id, err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.RunID, &s.T, &s.RMSPhaseRad, &s.PVPhaseRad); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListRuns returns all recorded runs, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, created_at, seeing_arcsec, fried_parameter_m,
			cn_squared, outer_scale_m, wavelength_m, layer_count, scintillation
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.SeeingArcsec,
			&run.FriedParameter, &run.CnSquared, &run.OuterScale,
			&run.Wavelength, &run.LayerCount, &run.Scintillation); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
