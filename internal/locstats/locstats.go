// Package locstats computes hypocenter expectation, covariance, and
// confidence-ellipsoid statistics from location PDF samples, and converts
// between the NonLinLoc ellipsoid representation and the QuakeML
// Tait-Bryan (semi-axis + plunge/azimuth/rotation) representation.
package locstats

// Sample is one draw from a location PDF. For the rectangular variants X,
// Y, Z are local model-frame coordinates in km; for the global variants X
// is longitude and Y is latitude in degrees, Z is depth in km.
type Sample struct {
	X, Y, Z float64
	Weight  float64 // 0 is treated as 1 (unweighted)
}

func (s Sample) weight() float64 {
	if s.Weight == 0 {
		return 1
	}
	return s.Weight
}

// Expectation is a location PDF's first moment.
type Expectation struct {
	X, Y, Z float64
}

// Covariance is the symmetric 3x3 second-moment matrix about an
// Expectation, stored by its six independent entries.
type Covariance struct {
	XX, XY, XZ, YY, YZ, ZZ float64
}

// Matrix expands c into the full symmetric 3x3 array expected by the svd
// package.
func (c Covariance) Matrix() [3][3]float64 {
	return [3][3]float64{
		{c.XX, c.XY, c.XZ},
		{c.XY, c.YY, c.YZ},
		{c.XZ, c.YZ, c.ZZ},
	}
}

// CalcExpectationRectangular computes the (weighted) component-wise mean
// of samples in local rectangular coordinates.
func CalcExpectationRectangular(samples []Sample) Expectation {
	var sx, sy, sz, sw float64
	for _, s := range samples {
		w := s.weight()
		sx += w * s.X
		sy += w * s.Y
		sz += w * s.Z
		sw += w
	}
	if sw == 0 {
		return Expectation{}
	}
	return Expectation{X: sx / sw, Y: sy / sw, Z: sz / sw}
}
