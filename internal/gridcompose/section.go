// Package gridcompose builds a 3D grid by polar interpolation across a set
// of oriented 2D cross-sections (radial profiles at different azimuths
// around a shared center point).
package gridcompose

import "github.com/banshee-data/seismocore/internal/gridcore"

// Section is one 2D cross-section: a radial profile at Azimuth (degrees
// clockwise from north) around (CenterX, CenterY). The section's own grid
// is addressed in its local (radius, depth) frame — x is distance from the
// center, y is depth.
type Section struct {
	Azimuth         float64
	CenterX, CenterY float64
	Grid            *gridcore.Grid
}

// radiusAt returns the section's interpolated value at radial distance r
// and depth z in its local frame, or gridcore.NoValue if out of range.
func (s Section) radiusAt(r, z float64) float64 {
	fx, fy, _ := s.Grid.ModelToIndex(r, z, 0)
	return s.Grid.InterpAtIndex(fx, fy, 0)
}
