// Package eikonal computes first-arrival travel-time fields on a 3D
// spherical-shell grid from a source point and a slowness field, by
// expanding-box finite-difference solution of the eikonal equation.
package eikonal

import (
	"math"

	"github.com/banshee-data/seismocore/internal/config"
	"github.com/banshee-data/seismocore/internal/coreerrs"
	"github.com/banshee-data/seismocore/internal/gridcore"
	"github.com/banshee-data/seismocore/internal/monitoring"
	"github.com/banshee-data/seismocore/internal/vecmath"
)

// NotComputed marks a time cell that the expanding box has not yet reached.
const NotComputed = 1.0e10

// Rejected marks a stencil candidate with no admissible root (negative
// discriminant or a degenerate quadratic); the cell is left at its prior
// value. A candidate below its known inputs is not marked Rejected:
// solveCell clamps it up to the smallest known neighbour time.
const Rejected = 1.0e11

// Source is a hypocenter location in geographic coordinates.
type Source struct {
	LatDeg  float64
	LonDeg  float64
	DepthKm float64
}

// Result carries the finished time grid plus solve diagnostics.
type Result struct {
	TimeGrid  *gridcore.Grid
	Restarts  int
	HeadWaves map[string]int // per-face head-wave trigger counts from the final sweep
}

// face names index the six expanding-box sides.
const (
	faceXLow  = "x-low"
	faceXHigh = "x-high"
	faceYLow  = "y-low"
	faceYHigh = "y-high"
	faceZLow  = "z-low"
	faceZHigh = "z-high"
)

var allFaces = [6]string{faceXLow, faceXHigh, faceYLow, faceYHigh, faceZLow, faceZHigh}

// Solve computes the first-arrival time grid for src given a slowness grid,
// per spec.md's expanding-box eikonal algorithm. The slowness grid's
// geometry (x=longitude, y=geocentric colatitude, z=shell radius
// decreasing with index) is reused verbatim for the output time grid.
func Solve(slowness *gridcore.Grid, src Source, cfg config.SolverConfig) (*Result, error) {
	cfg = cfg.NormalizeDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeDesc := slowness.Desc
	timeDesc.Kind = gridcore.Time
	timeGrid, err := gridcore.Allocate(timeDesc, slowness.Title+".time")
	if err != nil {
		return nil, err
	}
	timeGrid.Fill(NotComputed)

	fx, fy, fz, err := sourceIndex(&slowness.Desc, src)
	if err != nil {
		return nil, err
	}

	if slowness.OnBoundary(
		slowness.Desc.OrigX+fx*slowness.Desc.Dx,
		slowness.Desc.OrigY+fy*slowness.Desc.Dy,
		slowness.Desc.OrigZ+fz*slowness.Desc.Dz,
		2*slowness.Desc.Dx, 2*slowness.Desc.Dz, true) {
		monitoring.Logf("[eikonal] warning: source for grid %q lies within 2 cells of a boundary, parallel-ray errors possible", slowness.Title)
	}

	sv := &solve{
		slowness: slowness,
		time:     timeGrid,
		cfg:      cfg,
	}

	if err := sv.initSourceBox(fx, fy, fz); err != nil {
		return nil, err
	}

	// The expanding box must start at exactly the footprint initSourceBox
	// filled (a (2*SourceCubeHalfWidth+1)^3 cube rounded to the nearest
	// cell, clamped to the grid), not a single truncated cell — otherwise
	// expand's very first pass immediately regrows cells initSourceBox
	// already gave an accurate analytic time, overwriting them with a
	// less accurate finite-difference stencil estimate.
	initialLo, initialHi := sourceBoxBounds(&slowness.Desc, fx, fy, fz, cfg.SourceCubeHalfWidth)

	restarts := 0
	active := [6]bool{true, true, true, true, true, true}
	boxLo := initialLo
	boxHi := initialHi

	var headCounts map[string]int
	for {
		headCounts = sv.expand(&boxLo, &boxHi, &active)

		anyHead := false
		for _, c := range headCounts {
			if c > 0 {
				anyHead = true
				break
			}
		}
		if !anyHead || restarts >= cfg.MaxRestarts {
			break
		}
		restarts++
		monitoring.Logf("[eikonal] restarting expansion for grid %q (restart %d/%d), head-wave counts: %v",
			slowness.Title, restarts, cfg.MaxRestarts, headCounts)
		active = [6]bool{true, true, true, true, true, true}
		boxLo = initialLo
		boxHi = initialHi
	}

	result := &Result{TimeGrid: timeGrid, Restarts: restarts, HeadWaves: headCounts}

	stillTriggering := []string{}
	for face, c := range headCounts {
		if c > 0 {
			stillTriggering = append(stillTriggering, face)
		}
	}
	if len(stillTriggering) > 0 && restarts >= cfg.MaxRestarts {
		return result, &coreerrs.SolverDivergence{
			GridTitle:      slowness.Title,
			RestartsUsed:   restarts,
			RestartBudget:  cfg.MaxRestarts,
			RemainingFaces: stillTriggering,
		}
	}
	return result, nil
}

// sourceBoxBounds returns the [lo,hi] cell-index bounds of the source cube
// initSourceBox fills: half cells on either side of the rounded source
// index along each axis, clamped to the grid so the expanding box never
// starts outside valid cells.
func sourceBoxBounds(d *gridcore.Descriptor, fx, fy, fz float64, half int) (lo, hi [3]int) {
	ix0, iy0, iz0 := int(math.Round(fx)), int(math.Round(fy)), int(math.Round(fz))
	clamp := func(v, n int) int {
		if v < 0 {
			return 0
		}
		if v > n-1 {
			return n - 1
		}
		return v
	}
	lo = [3]int{clamp(ix0-half, d.Nx), clamp(iy0-half, d.Ny), clamp(iz0-half, d.Nz)}
	hi = [3]int{clamp(ix0+half, d.Nx), clamp(iy0+half, d.Ny), clamp(iz0+half, d.Nz)}
	return lo, hi
}

// sourceIndex converts a geographic source location into the slowness
// grid's continuous virtual index space.
func sourceIndex(d *gridcore.Descriptor, src Source) (fx, fy, fz float64, err error) {
	lonRad := src.LonDeg * vecmath.DegToRad
	colat := vecmath.GeocentricColatitude(src.LatDeg)
	r := vecmath.EarthRadiusKm - src.DepthKm

	fx = (lonRad - d.OrigX) / d.Dx
	fy = (colat - d.OrigY) / d.Dy
	fz = (d.OrigZ - r) / d.Dz

	if fx < 0 || fx > float64(d.Nx-1) || fy < 0 || fy > float64(d.Ny-1) || fz < 0 || fz > float64(d.Nz-1) {
		return 0, 0, 0, &coreerrs.ConfigError{
			Field: "source", Value: src,
			Reason: "source location falls outside the slowness grid",
		}
	}
	return fx, fy, fz, nil
}

// NewSlownessGridDescriptor centers a spherical-shell slowness grid of
// uniform radial step h on the given source latitude/longitude, using the
// coordinate convention Solve expects (x=longitude rad, y=geocentric
// colatitude rad, z=radius decreasing with index). The angular steps dq
// (colatitude) and df (longitude) are derived from h and the origin
// colatitude unless cfg.DqOverride/DfOverride carry an explicit value.
func NewSlownessGridDescriptor(nx, ny, nz int, h, latDeg, lonDeg float64, cfg config.SolverConfig) gridcore.Descriptor {
	colat := vecmath.GeocentricColatitude(latDeg)

	dq := cfg.DqOverride
	if dq == 0 {
		dq = h / vecmath.EarthRadiusKm
	}
	df := cfg.DfOverride
	if df == 0 {
		df = h / (vecmath.EarthRadiusKm * math.Sin(colat))
	}

	lonRad := lonDeg * vecmath.DegToRad
	origX := lonRad - float64(nx/2)*df
	origY := colat - float64(ny/2)*dq
	origZ := vecmath.EarthRadiusKm + float64(nz/2)*h

	return gridcore.Descriptor{
		Nx: nx, Ny: ny, Nz: nz,
		OrigX: origX, OrigY: origY, OrigZ: origZ,
		Dx: df, Dy: dq, Dz: h,
		Kind: gridcore.Slowness,
	}
}

// cellMetric returns the local spherical cell-edge lengths (radial,
// colatitude-arc, longitude-arc) at virtual index (ix,iy,iz).
func cellMetric(d *gridcore.Descriptor, ix, iy, iz int) (dh, dyArc, dxArc float64) {
	r := d.OrigZ - float64(iz)*d.Dz
	colat := d.OrigY + float64(iy)*d.Dy
	dh = d.Dz
	dyArc = r * d.Dy
	dxArc = r * math.Sin(colat) * d.Dx
	return
}
