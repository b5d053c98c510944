// Package config holds validated configuration records consumed by the
// grid, eikonal, and location-statistics packages. Every field here is a
// plain value on a struct passed explicitly into each operation — no
// package-level mutable state is kept, addressing the source program's
// file-scope global registry (grid_in, numSections, WaveType, ...).
package config

import (
	"fmt"

	"github.com/banshee-data/seismocore/internal/coreerrs"
)

// GridConfig carries the validated geometry for a grid descriptor before
// allocation.
type GridConfig struct {
	Nx, Ny, Nz    int
	OrigX, OrigY, OrigZ float64
	Dx, Dy, Dz    float64
	MergeDepths   []float64 // cascading z-merge depths, strictly increasing
}

// Validate checks GridConfig invariants from the grid descriptor spec:
// axis counts >= 2 (or 1 for a degenerate 2D grid), positive steps, and
// monotonically increasing cascading merge depths.
func (c *GridConfig) Validate() error {
	if c.Nx < 1 || c.Ny < 1 || c.Nz < 1 {
		return &coreerrs.ConfigError{Field: "Nx/Ny/Nz", Value: [3]int{c.Nx, c.Ny, c.Nz}, Reason: "axis counts must be >= 1"}
	}
	if c.Dx <= 0 {
		return &coreerrs.ConfigError{Field: "Dx", Value: c.Dx, Reason: "step must be strictly positive"}
	}
	if c.Dy <= 0 {
		return &coreerrs.ConfigError{Field: "Dy", Value: c.Dy, Reason: "step must be strictly positive"}
	}
	if c.Dz <= 0 {
		return &coreerrs.ConfigError{Field: "Dz", Value: c.Dz, Reason: "step must be strictly positive"}
	}
	if len(c.MergeDepths) > 16 {
		return &coreerrs.ConfigError{Field: "MergeDepths", Value: len(c.MergeDepths), Reason: "at most 16 cascading levels supported"}
	}
	for i := 1; i < len(c.MergeDepths); i++ {
		if c.MergeDepths[i] <= c.MergeDepths[i-1] {
			return &coreerrs.ConfigError{
				Field:  "MergeDepths",
				Value:  c.MergeDepths,
				Reason: fmt.Sprintf("merge depths must be strictly increasing, got %v at index %d", c.MergeDepths, i),
			}
		}
	}
	return nil
}

// SolverConfig carries validated eikonal solver tuning parameters. Fields
// left at their zero value are replaced by DefaultSolverConfig's values
// when passed through NormalizeDefaults.
type SolverConfig struct {
	SourceCubeHalfWidth int     // NCUBE, default 2 (5x5x5 source box)
	HeadWaveTestFactor  float64 // headtest, default 0.7 (2D beats 3D by headtest*s*d)
	MaxRestarts         int     // restart budget, default 1, typical 1-50
	MaxRadiusCells      int     // 0 means unbounded
	DqOverride          float64 // 0 means derive dq = h/EarthRadiusKm
	DfOverride          float64 // 0 means derive df = h/(EarthRadiusKm*sin(originColat))
}

// DefaultSolverConfig returns the NonLinLoc-compatible solver defaults.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		SourceCubeHalfWidth: 2,
		HeadWaveTestFactor:  0.7,
		MaxRestarts:         1,
	}
}

// Validate checks SolverConfig invariants.
func (c *SolverConfig) Validate() error {
	if c.SourceCubeHalfWidth < 1 {
		return &coreerrs.ConfigError{Field: "SourceCubeHalfWidth", Value: c.SourceCubeHalfWidth, Reason: "must be >= 1"}
	}
	if c.HeadWaveTestFactor < 0 {
		return &coreerrs.ConfigError{Field: "HeadWaveTestFactor", Value: c.HeadWaveTestFactor, Reason: "must be non-negative"}
	}
	if c.MaxRestarts < 0 || c.MaxRestarts > 50 {
		return &coreerrs.ConfigError{Field: "MaxRestarts", Value: c.MaxRestarts, Reason: "must be in [0, 50]"}
	}
	if c.MaxRadiusCells < 0 {
		return &coreerrs.ConfigError{Field: "MaxRadiusCells", Value: c.MaxRadiusCells, Reason: "must be non-negative (0 = unbounded)"}
	}
	return nil
}

// NormalizeDefaults fills zero-valued tunables with DefaultSolverConfig's
// values, leaving explicit overrides untouched.
func (c SolverConfig) NormalizeDefaults() SolverConfig {
	d := DefaultSolverConfig()
	if c.SourceCubeHalfWidth == 0 {
		c.SourceCubeHalfWidth = d.SourceCubeHalfWidth
	}
	if c.HeadWaveTestFactor == 0 {
		c.HeadWaveTestFactor = d.HeadWaveTestFactor
	}
	if c.MaxRestarts == 0 {
		c.MaxRestarts = d.MaxRestarts
	}
	return c
}
