package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SimConfig represents a simulation parameter file. All fields are optional
// pointers so that a partial JSON file overrides only the parameters it
// names; the Get* methods supply defaults for the rest.
type SimConfig struct {
	// Turbulence params
	SeeingArcsec  *float64 `json:"seeing_arcsec,omitempty"`
	FriedParam    *float64 `json:"fried_parameter,omitempty"` // meters at 500 nm, overrides seeing
	OuterScale    *float64 `json:"outer_scale,omitempty"`     // meters
	Wavelength    *float64 `json:"wavelength,omitempty"`      // meters
	Scintillation *bool    `json:"scintillation,omitempty"`

	// Grid params
	GridSize *int     `json:"grid_size,omitempty"`
	Pitch    *float64 `json:"pitch,omitempty"` // meters

	// Evolution params
	Duration *float64 `json:"duration,omitempty"` // seconds
	TimeStep *float64 `json:"time_step,omitempty"`
	Seed     *uint64  `json:"seed,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrInt(v int) *int             { return &v }

// LoadSimConfig loads a SimConfig from a JSON file. The file must have a
// .json extension and be under the max file size. Fields omitted from the
// JSON retain their defaults, so partial configs are safe.
func LoadSimConfig(path string) (*SimConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &SimConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are physically sensible.
func (c *SimConfig) Validate() error {
	if c.SeeingArcsec != nil && *c.SeeingArcsec <= 0 {
		return fmt.Errorf("seeing_arcsec must be positive, got %f", *c.SeeingArcsec)
	}
	if c.FriedParam != nil && *c.FriedParam <= 0 {
		return fmt.Errorf("fried_parameter must be positive, got %f", *c.FriedParam)
	}
	if c.OuterScale != nil && *c.OuterScale <= 0 {
		return fmt.Errorf("outer_scale must be positive, got %f", *c.OuterScale)
	}
	if c.Wavelength != nil && *c.Wavelength <= 0 {
		return fmt.Errorf("wavelength must be positive, got %g", *c.Wavelength)
	}
	if c.GridSize != nil && *c.GridSize < 2 {
		return fmt.Errorf("grid_size must be at least 2, got %d", *c.GridSize)
	}
	if c.Pitch != nil && *c.Pitch <= 0 {
		return fmt.Errorf("pitch must be positive, got %f", *c.Pitch)
	}
	if c.Duration != nil && *c.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %f", *c.Duration)
	}
	if c.TimeStep != nil && *c.TimeStep <= 0 {
		return fmt.Errorf("time_step must be positive, got %f", *c.TimeStep)
	}
	return nil
}

// GetSeeingArcsec returns the seeing_arcsec value or the default.
func (c *SimConfig) GetSeeingArcsec() float64 {
	if c.SeeingArcsec == nil {
		return 1.0
	}
	return *c.SeeingArcsec
}

// GetFriedParam returns the fried_parameter value, or 0 when unset so that
// callers fall back to deriving it from the seeing.
func (c *SimConfig) GetFriedParam() float64 {
	if c.FriedParam == nil {
		return 0
	}
	return *c.FriedParam
}

// GetOuterScale returns the outer_scale value or the default.
func (c *SimConfig) GetOuterScale() float64 {
	if c.OuterScale == nil {
		return 40
	}
	return *c.OuterScale
}

// GetWavelength returns the wavelength value or the 500 nm default.
func (c *SimConfig) GetWavelength() float64 {
	if c.Wavelength == nil {
		return 500e-9
	}
	return *c.Wavelength
}

// GetScintillation returns the scintillation value or the default.
func (c *SimConfig) GetScintillation() bool {
	if c.Scintillation == nil {
		return false
	}
	return *c.Scintillation
}

// GetGridSize returns the grid_size value or the default.
func (c *SimConfig) GetGridSize() int {
	if c.GridSize == nil {
		return 128
	}
	return *c.GridSize
}

// GetPitch returns the pitch value or the default.
func (c *SimConfig) GetPitch() float64 {
	if c.Pitch == nil {
		return 0.05
	}
	return *c.Pitch
}

// GetDuration returns the duration value or the default.
func (c *SimConfig) GetDuration() float64 {
	if c.Duration == nil {
		return 10
	}
	return *c.Duration
}

// GetTimeStep returns the time_step value or the default.
func (c *SimConfig) GetTimeStep() float64 {
	if c.TimeStep == nil {
		return 0.1
	}
	return *c.TimeStep
}

// GetSeed returns the seed value or the default.
func (c *SimConfig) GetSeed() uint64 {
	if c.Seed == nil {
		return 1
	}
	return *c.Seed
}
