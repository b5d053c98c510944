package eikonal

import "github.com/banshee-data/seismocore/internal/gridcore"

// SourceProfile reads the 1D radial travel-time profile directly under the
// source's horizontal position out of a finished time grid — a thin
// reader over the solved field, not a separate solve.
func SourceProfile(grid *gridcore.Grid, srcX, srcY float64) []gridcore.ProfileSample {
	d := &grid.Desc
	fx, fy, _ := grid.ModelToIndex(srcX, srcY, d.OrigZ)

	samples := make([]gridcore.ProfileSample, 0, d.Nz)
	for iz := 0; iz < d.Nz; iz++ {
		v := grid.InterpAtIndex(fx, fy, float64(iz))
		if v >= NotComputed {
			continue
		}
		r := d.OrigZ - float64(iz)*d.Dz
		samples = append(samples, gridcore.ProfileSample{Depth: d.OrigZ - r, Value: v})
	}
	return samples
}
