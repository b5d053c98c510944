package locstats

import "github.com/banshee-data/seismocore/internal/vecmath"

// CalcExpectationGlobal computes the (weighted) mean of samples in
// geographic coordinates (X=longitude, Y=latitude degrees, Z=depth km),
// wrapping each sample's longitude into the branch containing
// referenceLon before averaging, guarding against the +/-180 degree
// discontinuity (spec.md SS4.3).
func CalcExpectationGlobal(samples []Sample, referenceLon float64) Expectation {
	var sx, sy, sz, sw float64
	for _, s := range samples {
		w := s.weight()
		wrappedLon := vecmath.WrapLongitude(s.X, referenceLon)
		sx += w * wrappedLon
		sy += w * s.Y
		sz += w * s.Z
		sw += w
	}
	if sw == 0 {
		return Expectation{}
	}
	// Each wrapped longitude already lies within 180 degrees of
	// referenceLon, so their weighted average does too; no further
	// wrapping is needed (spec.md scenario S5).
	return Expectation{X: sx / sw, Y: sy / sw, Z: sz / sw}
}
